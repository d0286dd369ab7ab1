package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"foodcourt/storefront-svc/internal/assistant"
	"foodcourt/storefront-svc/internal/cart"
	"foodcourt/storefront-svc/internal/domain"
	"foodcourt/storefront-svc/internal/service"
)

type Handler struct {
	Catalog  service.CatalogServiceInterface
	Sessions service.SessionServiceInterface
	Orders   service.OrderServiceInterface
}

func NewHandler(catalog service.CatalogServiceInterface, sessions service.SessionServiceInterface, orders service.OrderServiceInterface) *Handler {
	return &Handler{
		Catalog:  catalog,
		Sessions: sessions,
		Orders:   orders,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.getMenu).Methods("GET")

	r.HandleFunc("/api/admin/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/admin/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/admin/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/admin/restaurants/{id}/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/admin/restaurants/{id}/menu/{itemId}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/admin/restaurants/{id}/menu/{itemId}", h.deleteMenuItem).Methods("DELETE")

	r.HandleFunc("/api/sessions", h.createSession).Methods("POST")
	r.HandleFunc("/api/sessions/{id}", h.closeSession).Methods("DELETE")
	r.HandleFunc("/api/sessions/{id}/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/sessions/{id}/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/sessions/{id}/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/cart/items/{itemId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/sessions/{id}/cart/items/{itemId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/sessions/{id}/messages", h.getMessages).Methods("GET")
	r.HandleFunc("/api/sessions/{id}/messages", h.postMessage).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/checkout", h.checkout).Methods("POST")

	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/admin/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.Restaurants(r.Context(), r.URL.Query().Get("cuisine"))
	if err != nil {
		writeError(w, err)
		return
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Catalog.Restaurant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.Menu(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Catalog.CreateRestaurant(r.Context(), &rest); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest.ID = mux.Vars(r)["id"]
	if err := h.Catalog.UpdateRestaurant(r.Context(), &rest); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteRestaurant(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.RestaurantID = mux.Vars(r)["id"]
	if err := h.Catalog.CreateMenuItem(r.Context(), &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.ID = vars["itemId"]
	item.RestaurantID = vars["id"]
	if err := h.Catalog.UpdateMenuItem(r.Context(), &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Catalog.DeleteMenuItem(r.Context(), vars["id"], vars["itemId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sessionResponse struct {
	ID               string        `json:"id"`
	CreatedAt        time.Time     `json:"created_at"`
	Messages         []messageView `json:"messages"`
	SuggestedQueries []string      `json:"suggested_queries"`
	Cart             cartView      `json:"cart"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:               sess.ID,
		CreatedAt:        sess.CreatedAt,
		Messages:         messageViews(sess.Conversation.Messages()),
		SuggestedQueries: assistant.SuggestedQueries,
		Cart:             newCartView(sess),
	})
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Close(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cartView struct {
	RestaurantName string              `json:"restaurant_name"`
	Items          []cart.Line         `json:"items"`
	ItemCount      int                 `json:"item_count"`
	Breakdown      cart.Breakdown      `json:"breakdown"`
	Notifications  []cart.Notification `json:"notifications"`
}

// newCartView drains the session's pending notifications into the response.
func newCartView(sess *service.Session) cartView {
	lines := sess.Cart.Lines()
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	restaurant := ""
	if len(lines) > 0 {
		restaurant = lines[0].RestaurantName
	}
	return cartView{
		RestaurantName: restaurant,
		Items:          lines,
		ItemCount:      count,
		Breakdown:      cart.PriceBreakdown(lines),
		Notifications:  sess.Feed.Drain(),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(sess))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MenuItemID string `json:"menu_item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, err := h.Sessions.AddItem(mux.Vars(r)["id"], req.MenuItemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(sess))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Quantity == nil {
		http.Error(w, "quantity is required", http.StatusBadRequest)
		return
	}
	sess, err := h.Sessions.UpdateQuantity(vars["id"], vars["itemId"], *req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(sess))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sess, err := h.Sessions.RemoveItem(vars["id"], vars["itemId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(sess))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.ClearCart(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(sess))
}

type messageView struct {
	ID        string                 `json:"id"`
	Role      assistant.Role         `json:"role"`
	Content   string                 `json:"content"`
	CreatedAt time.Time              `json:"created_at"`
	Actions   []assistant.ActionView `json:"actions,omitempty"`
}

func newMessageView(m assistant.Message) messageView {
	view := messageView{ID: m.ID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt}
	if len(m.Actions) > 0 {
		view.Actions = assistant.DescribeActions(m.Actions)
	}
	return view
}

func messageViews(msgs []assistant.Message) []messageView {
	views := make([]messageView, len(msgs))
	for i, m := range msgs {
		views[i] = newMessageView(m)
	}
	return views
}

func (h *Handler) getMessages(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messageViews(sess.Conversation.Messages()),
		"pending":  sess.Conversation.Pending(),
	})
}

// postMessage waits for the assistant's reply unless async=true, in which
// case it returns once the user message is recorded.
func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("async") == "true" {
		msg, err := sess.Conversation.Submit(req.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"message": newMessageView(msg),
			"pending": sess.Conversation.Pending(),
		})
		return
	}

	reply, err := sess.Conversation.Ask(r.Context(), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reply": newMessageView(reply),
		"cart":  newCartView(sess),
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.Checkout(r.Context(), sess, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], domain.OrderStatus(strings.ToLower(string(req.Status))))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// statusClientClosedRequest is the non-standard status logged when the caller
// hangs up before the reply is ready.
const statusClientClosedRequest = 499

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		http.Error(w, err.Error(), statusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrMissingAddress),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, assistant.ErrEmptyUtterance):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrOrderClosed),
		errors.Is(err, assistant.ErrClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
