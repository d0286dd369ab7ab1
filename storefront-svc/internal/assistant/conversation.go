package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"foodcourt/storefront-svc/internal/cart"
)

var (
	ErrEmptyUtterance = errors.New("message is empty")
	ErrClosed         = errors.New("conversation is closed")
)

const Greeting = "Hey there! 👋 I'm your OrderAssist. Tell me what you're craving and I'll help you order. Try saying things like:\n\n" +
	"• \"I want 2 cheese burgers\"\n• \"Show me something spicy\"\n• \"Order a pizza under 400\""

var SuggestedQueries = []string{
	"I want 2 cheese burgers",
	"Suggest something spicy",
	"Show me pizzas under 400",
	"What's popular today?",
}

type ConversationConfig struct {
	Resolver *Resolver
	Catalog  *Catalog
	Cart     *cart.Store
	Pacer    Pacer
	Log      *slog.Logger
}

type job struct {
	utterance string
	readyAt   time.Time
	reply     chan Message
}

// Conversation feeds utterances to the resolver and applies its cart
// actions. Submissions are accepted at any time; replies are appended in
// submission order by a single worker. Each reply's delay counts from its
// own submission, so overlapping delays do not add up.
type Conversation struct {
	resolver   *Resolver
	catalog    *Catalog
	cart       *cart.Store
	transcript *Transcript
	pacer      Pacer
	log        *slog.Logger

	mu      sync.Mutex
	queue   []*job
	pending int
	idle    chan struct{}
	closed  bool

	wake chan struct{}
	done chan struct{}
}

func NewConversation(cfg ConversationConfig) *Conversation {
	if cfg.Resolver == nil {
		cfg.Resolver = NewResolver()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = &Catalog{}
	}
	if cfg.Pacer == nil {
		cfg.Pacer = NoDelay{}
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	idle := make(chan struct{})
	close(idle)

	c := &Conversation{
		resolver:   cfg.Resolver,
		catalog:    cfg.Catalog,
		cart:       cfg.Cart,
		transcript: NewTranscript(),
		pacer:      cfg.Pacer,
		log:        cfg.Log,
		idle:       idle,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	c.transcript.AppendAssistant(Greeting, nil)

	go c.run()
	return c
}

// Submit records the user's message and queues its reply.
func (c *Conversation) Submit(text string) (Message, error) {
	msg, _, err := c.submit(text)
	return msg, err
}

// Ask submits text and waits for its reply. If ctx ends first the reply is
// still produced and appended; only the wait is abandoned.
func (c *Conversation) Ask(ctx context.Context, text string) (Message, error) {
	_, j, err := c.submit(text)
	if err != nil {
		return Message{}, err
	}
	select {
	case reply := <-j.reply:
		return reply, nil
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

func (c *Conversation) submit(text string) (Message, *job, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, nil, ErrEmptyUtterance
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Message{}, nil, ErrClosed
	}

	msg := c.transcript.AppendUser(text)
	j := &job{
		utterance: text,
		readyAt:   time.Now().Add(c.pacer.Delay()),
		reply:     make(chan Message, 1),
	}
	c.queue = append(c.queue, j)
	if c.pending == 0 {
		c.idle = make(chan struct{})
	}
	c.pending++

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return msg, j, nil
}

func (c *Conversation) Messages() []Message {
	return c.transcript.Messages()
}

// Pending reports how many replies are still being prepared.
func (c *Conversation) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Wait blocks until every submitted utterance has its reply.
func (c *Conversation) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting input and returns once queued replies are done.
func (c *Conversation) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		select {
		case c.wake <- struct{}{}:
		default:
		}
	}
	c.mu.Unlock()
	<-c.done
}

func (c *Conversation) run() {
	defer close(c.done)
	for {
		j, ok := c.next()
		if !ok {
			return
		}

		if d := time.Until(j.readyAt); d > 0 {
			timer := time.NewTimer(d)
			<-timer.C
		}
		j.reply <- c.respond(j.utterance)

		c.mu.Lock()
		c.pending--
		if c.pending == 0 {
			close(c.idle)
		}
		c.mu.Unlock()
	}
}

func (c *Conversation) next() (*job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.queue) == 0 {
		if c.closed {
			return nil, false
		}
		c.mu.Unlock()
		<-c.wake
		c.mu.Lock()
	}
	j := c.queue[0]
	c.queue = c.queue[1:]
	return j, true
}

func (c *Conversation) respond(utterance string) Message {
	in := Input{
		Utterance:      utterance,
		Catalog:        c.catalog,
		LastSuggestion: c.transcript.LastSuggestion(),
	}
	if c.cart != nil {
		in.Cart = c.cart.Summary()
	}

	result := c.resolver.Resolve(in)
	c.apply(result.Actions)

	c.log.Debug("assistant replied", slog.String("rule", result.Rule), slog.Int("actions", len(result.Actions)))
	return c.transcript.AppendAssistant(result.Reply, result.Actions)
}

// apply performs AddToCart actions one unit at a time, so each unit is its
// own AddItem call.
func (c *Conversation) apply(actions []Action) {
	if c.cart == nil {
		return
	}
	for _, action := range actions {
		add, ok := action.(AddToCart)
		if !ok {
			continue
		}
		item, found := c.catalog.Item(add.ItemID)
		if !found {
			c.log.Warn("assistant action for unknown item", slog.String("item_id", add.ItemID))
			continue
		}
		restaurant := c.catalog.RestaurantName(item.RestaurantID)
		for i := 0; i < add.Quantity; i++ {
			c.cart.AddItem(item, restaurant)
		}
	}
}
