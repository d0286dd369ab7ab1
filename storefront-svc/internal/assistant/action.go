package assistant

type ActionKind string

const (
	KindAddToCart ActionKind = "add_to_cart"
	KindViewCart  ActionKind = "view_cart"
	KindCheckout  ActionKind = "checkout"
	KindSearch    ActionKind = "search"
	KindRecommend ActionKind = "recommend"
)

// Action is what a reply asks the storefront to do. Only AddToCart mutates
// the cart; the others describe the reply for clients.
type Action interface {
	Kind() ActionKind
}

type AddToCart struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type ViewCart struct{}

type Checkout struct{}

type Search struct {
	Query string `json:"query"`
}

type Recommend struct {
	ItemID   string `json:"item_id"`
	Criteria string `json:"criteria"`
}

func (AddToCart) Kind() ActionKind { return KindAddToCart }
func (ViewCart) Kind() ActionKind  { return KindViewCart }
func (Checkout) Kind() ActionKind  { return KindCheckout }
func (Search) Kind() ActionKind    { return KindSearch }
func (Recommend) Kind() ActionKind { return KindRecommend }

type ActionView struct {
	Type ActionKind `json:"type"`
	Data Action     `json:"data,omitempty"`
}

func DescribeActions(actions []Action) []ActionView {
	views := make([]ActionView, 0, len(actions))
	for _, action := range actions {
		view := ActionView{Type: action.Kind()}
		switch action.(type) {
		case ViewCart, Checkout:
		default:
			view.Data = action
		}
		views = append(views, view)
	}
	return views
}
