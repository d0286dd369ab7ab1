package assistant

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"foodcourt/storefront-svc/internal/cart"
	"foodcourt/storefront-svc/internal/domain"
)

// ConfirmationPolicy decides which item a "yes" adds to the cart.
type ConfirmationPolicy int

const (
	// ConfirmFirstBestseller adds the first bestseller in catalog order,
	// whatever was suggested before.
	ConfirmFirstBestseller ConfirmationPolicy = iota
	// ConfirmLastSuggestion adds the most recently recommended item and
	// falls back to ConfirmFirstBestseller when nothing was recommended.
	ConfirmLastSuggestion
)

const defaultPizzaCeiling int64 = 1000

type Input struct {
	Utterance string
	Catalog   *Catalog
	Cart      cart.Summary
	// LastSuggestion is the item id of the latest recommendation in the
	// transcript, if any.
	LastSuggestion string
}

type Result struct {
	Rule    string
	Reply   string
	Actions []Action
}

type rule struct {
	name   string
	match  func(msg string) bool
	handle func(in Input, msg string) (Result, bool)
}

// Resolver maps an utterance to a reply by trying its rules in order. The
// first rule that matches and produces a reply wins; a rule whose catalog
// lookup comes up empty lets evaluation continue with the next one.
type Resolver struct {
	rules         []rule
	pick          func(n int) int
	policy        ConfirmationPolicy
	quantityLimit int
}

type Option func(*Resolver)

// WithPicker replaces the uniform random choice used for popular items.
func WithPicker(pick func(n int) int) Option {
	return func(r *Resolver) { r.pick = pick }
}

func WithConfirmationPolicy(policy ConfirmationPolicy) Option {
	return func(r *Resolver) { r.policy = policy }
}

// WithQuantityLimit caps how many units one utterance may add. Zero means
// no cap.
func WithQuantityLimit(limit int) Option {
	return func(r *Resolver) { r.quantityLimit = limit }
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{pick: rand.Intn, policy: ConfirmFirstBestseller}
	for _, opt := range opts {
		opt(r)
	}

	r.rules = []rule{
		{name: "cart_inquiry", match: containsAny("cart", "order"), handle: r.cartInquiry},
		{name: "spicy", match: containsAny("spicy", "hot"), handle: r.spicy},
		{name: "burger", match: containsAny("burger"), handle: r.burger},
		{name: "pizza", match: containsAny("pizza"), handle: r.pizza},
		{name: "popular", match: containsAny("popular", "trending", "best"), handle: r.popular},
		{name: "confirm", match: containsAny("yes", "add it", "sure"), handle: r.confirm},
		{name: "checkout", match: containsAny("checkout", "place order"), handle: r.checkout},
		{name: "fallback", match: func(string) bool { return true }, handle: r.fallback},
	}
	return r
}

// RuleNames lists the rules in evaluation order.
func (r *Resolver) RuleNames() []string {
	names := make([]string, len(r.rules))
	for i, rl := range r.rules {
		names[i] = rl.name
	}
	return names
}

func (r *Resolver) Resolve(in Input) Result {
	if in.Catalog == nil {
		in.Catalog = &Catalog{}
	}
	msg := strings.ToLower(in.Utterance)

	for _, rl := range r.rules {
		if !rl.match(msg) {
			continue
		}
		if result, ok := rl.handle(in, msg); ok {
			result.Rule = rl.name
			return result
		}
	}
	// unreachable while fallback is last
	return Result{Rule: "fallback", Reply: helpReply}
}

func (r *Resolver) cartInquiry(in Input, _ string) (Result, bool) {
	count := in.Cart.ItemCount
	if count == 0 {
		return Result{
			Reply:   "Your cart is empty! 🛒 Tell me what you'd like to eat and I'll add it for you.",
			Actions: []Action{ViewCart{}},
		}, true
	}
	return Result{
		Reply: fmt.Sprintf("You have %d item%s in your cart totaling %s. Would you like to checkout or add more items?",
			count, plural(count), price(in.Cart.Subtotal)),
		Actions: []Action{ViewCart{}},
	}, true
}

func (r *Resolver) spicy(in Input, _ string) (Result, bool) {
	matches := in.Catalog.Filter(func(item domain.MenuItem) bool {
		name := strings.ToLower(item.Name)
		return strings.Contains(strings.ToLower(item.Description), "spicy") ||
			strings.Contains(name, "spicy") ||
			strings.Contains(strings.ToLower(item.Category), "indian") ||
			strings.Contains(name, "masala")
	})
	if len(matches) == 0 {
		return Result{
			Reply: "I'd recommend our Butter Chicken or Paneer Tikka Masala from Spice Garden - both are deliciously spicy! 🌶️",
		}, true
	}

	item := matches[0]
	return Result{
		Reply:   "🌶️ Here's something spicy for you!\n\n" + describe(in.Catalog, item) + "\n\nWant me to add it to your cart?",
		Actions: []Action{Recommend{ItemID: item.ID, Criteria: "spicy"}},
	}, true
}

func (r *Resolver) burger(in Input, msg string) (Result, bool) {
	matches := in.Catalog.Filter(func(item domain.MenuItem) bool {
		return strings.Contains(strings.ToLower(item.Name), "burger")
	})
	if len(matches) == 0 {
		return Result{}, false
	}

	quantity := quantityIn(msg)
	if r.quantityLimit > 0 && quantity > r.quantityLimit {
		quantity = r.quantityLimit
	}

	item := matches[0]
	return Result{
		Reply: fmt.Sprintf("Great choice! 🍔 I've added %d %s%s to your cart (%s).\n\nWould you like to add anything else? Maybe some fries or a drink?",
			quantity, item.Name, plural(quantity), price(item.Price*int64(quantity))),
		Actions: []Action{AddToCart{ItemID: item.ID, Quantity: quantity}},
	}, true
}

func (r *Resolver) pizza(in Input, msg string) (Result, bool) {
	ceiling := priceCeilingIn(msg, defaultPizzaCeiling)
	matches := in.Catalog.Filter(func(item domain.MenuItem) bool {
		return strings.Contains(strings.ToLower(item.Category), "pizza") && item.Price <= ceiling
	})
	if len(matches) == 0 {
		return Result{
			Reply:   "I couldn't find pizzas matching your criteria. Try asking for 'pizzas under 500' or just 'any pizza'.",
			Actions: []Action{Search{Query: msg}},
		}, true
	}

	item := matches[0]
	return Result{
		Reply:   "🍕 I found the perfect pizza for you!\n\n" + describe(in.Catalog, item) + "\n\nShould I add it to your cart?",
		Actions: []Action{Recommend{ItemID: item.ID, Criteria: "pizza under " + strconv.FormatInt(ceiling, 10)}},
	}, true
}

func (r *Resolver) popular(in Input, _ string) (Result, bool) {
	bestsellers := in.Catalog.Bestsellers()
	if len(bestsellers) == 0 {
		return Result{}, false
	}

	item := bestsellers[r.pick(len(bestsellers))]
	return Result{
		Reply: "🔥 Here's what's trending!\n\n" + describe(in.Catalog, item) +
			fmt.Sprintf("\n⭐ %s (%d reviews)", strconv.FormatFloat(item.Rating, 'f', -1, 64), item.ReviewCount) +
			"\n\nWant me to add it to your cart?",
		Actions: []Action{Recommend{ItemID: item.ID, Criteria: "popular"}},
	}, true
}

func (r *Resolver) confirm(in Input, _ string) (Result, bool) {
	item, ok := r.confirmationTarget(in)
	if !ok {
		return Result{}, false
	}
	return Result{
		Reply:   "Added to cart! 🎉 Anything else you'd like to add?",
		Actions: []Action{AddToCart{ItemID: item.ID, Quantity: 1}},
	}, true
}

func (r *Resolver) confirmationTarget(in Input) (domain.MenuItem, bool) {
	if r.policy == ConfirmLastSuggestion && in.LastSuggestion != "" {
		if item, ok := in.Catalog.Item(in.LastSuggestion); ok {
			return item, true
		}
	}
	bestsellers := in.Catalog.Bestsellers()
	if len(bestsellers) == 0 {
		return domain.MenuItem{}, false
	}
	return bestsellers[0], true
}

func (r *Resolver) checkout(in Input, _ string) (Result, bool) {
	if in.Cart.ItemCount == 0 {
		return Result{Reply: "Your cart is empty! Add some items first. What would you like to eat?"}, true
	}
	return Result{
		Reply: "Ready to checkout! 🛒\n\nTotal: " + price(in.Cart.Subtotal) +
			"\n\nClick the cart icon to complete your order, or tell me if you want to add more items!",
		Actions: []Action{Checkout{}},
	}, true
}

const helpReply = "I'm here to help you order food! 🍽️ Try asking me things like:\n\n" +
	"• \"I want a burger\"\n• \"Show me spicy food\"\n• \"What's in my cart?\"\n• \"Suggest something popular\""

func (r *Resolver) fallback(Input, string) (Result, bool) {
	return Result{Reply: helpReply}, true
}

func describe(c *Catalog, item domain.MenuItem) string {
	return fmt.Sprintf("**%s** - %s\n%s\nFrom %s", item.Name, price(item.Price), item.Description, c.RestaurantName(item.RestaurantID))
}

func price(amount int64) string {
	return "₹" + strconv.FormatInt(amount, 10)
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// ParseConfirmationPolicy accepts "first_bestseller" and "last_suggestion".
func ParseConfirmationPolicy(s string) (ConfirmationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first_bestseller":
		return ConfirmFirstBestseller, nil
	case "last_suggestion":
		return ConfirmLastSuggestion, nil
	}
	return ConfirmFirstBestseller, fmt.Errorf("unknown confirmation policy %q", s)
}
