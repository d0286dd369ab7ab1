package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"foodcourt/storefront-svc/internal/assistant"
	"foodcourt/storefront-svc/internal/cart"
)

// Session is one visitor's cart and assistant conversation. Both live only
// in memory and die with the session.
type Session struct {
	ID           string
	CreatedAt    time.Time
	Catalog      *assistant.Catalog
	Cart         *cart.Store
	Feed         *cart.Feed
	Conversation *assistant.Conversation

	lastSeen atomic.Int64
}

// LastSeen is the last time the session was looked up.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

type SessionOptions struct {
	Pacer           assistant.Pacer
	ResolverOptions []assistant.Option
}

type SessionService struct {
	catalog CatalogSource
	opts    SessionOptions
	log     *slog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService(catalog CatalogSource, opts SessionOptions, log *slog.Logger) *SessionService {
	return &SessionService{
		catalog:  catalog,
		opts:     opts,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// WithClock replaces the clock used for idle tracking.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

func (s *SessionService) Create(ctx context.Context) (*Session, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	id := uuid.NewString()
	log := s.log.With(slog.String("session_id", id))
	feed := &cart.Feed{}
	store := cart.NewStore(cart.Fanout{feed, cart.LogNotifier{Log: log, SessionID: id}})

	createdAt := s.now()
	sess := &Session{
		ID:        id,
		CreatedAt: createdAt,
		Catalog:   snapshot,
		Cart:      store,
		Feed:      feed,
		Conversation: assistant.NewConversation(assistant.ConversationConfig{
			Resolver: assistant.NewResolver(s.opts.ResolverOptions...),
			Catalog:  snapshot,
			Cart:     store,
			Pacer:    s.opts.Pacer,
			Log:      log,
		}),
	}
	sess.lastSeen.Store(createdAt.UnixNano())

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.Info("session started", slog.Int("menu_items", len(snapshot.Items)))
	return sess, nil
}

func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen.Store(s.now().UnixNano())
	return sess, nil
}

// Close ends a session once its pending replies are written.
func (s *SessionService) Close(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	sess.Conversation.Close()
	return nil
}

func (s *SessionService) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Conversation.Close()
	}
}

// EvictIdle closes every session not looked up within idle and reports how
// many were closed.
func (s *SessionService) EvictIdle(idle time.Duration) int {
	cutoff := s.now().Add(-idle).UnixNano()

	s.mu.Lock()
	var stale []*Session
	for id, sess := range s.sessions {
		if sess.lastSeen.Load() < cutoff {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.Conversation.Close()
		s.log.Info("session evicted", slog.String("session_id", sess.ID), slog.Time("last_seen", sess.LastSeen()))
	}
	return len(stale)
}

// RunEviction evicts idle sessions every interval until ctx is done.
func (s *SessionService) RunEviction(ctx context.Context, idle, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.EvictIdle(idle)
		}
	}
}

func (s *SessionService) AddItem(sessionID, itemID string) (*Session, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	item, ok := sess.Catalog.Item(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	sess.Cart.AddItem(item, sess.Catalog.RestaurantName(item.RestaurantID))
	return sess, nil
}

func (s *SessionService) UpdateQuantity(sessionID, itemID string, quantity int) (*Session, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Cart.UpdateQuantity(itemID, quantity)
	return sess, nil
}

func (s *SessionService) RemoveItem(sessionID, itemID string) (*Session, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Cart.RemoveItem(itemID)
	return sess, nil
}

func (s *SessionService) ClearCart(sessionID string) (*Session, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Cart.Clear()
	return sess, nil
}
