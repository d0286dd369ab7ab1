package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"foodcourt/rate-svc/internal/domain"
	"foodcourt/rate-svc/internal/service"
)

type Handler struct {
	Reviews service.ReviewServiceInterface
}

func NewHandler(reviews service.ReviewServiceInterface) *Handler {
	return &Handler{Reviews: reviews}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/menu-items/{itemId}/reviews", h.createReview).Methods("POST")
	r.HandleFunc("/api/menu-items/{itemId}/reviews", h.getItemReviews).Methods("GET")
	r.HandleFunc("/api/reviews", h.createBulkReviews).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "rate-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var review domain.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	review.MenuItemID = mux.Vars(r)["itemId"]
	if review.OrderID == "" || review.RestaurantID == "" {
		http.Error(w, "order_id and restaurant_id are required", http.StatusBadRequest)
		return
	}

	if err := h.Reviews.CreateOrUpdate(r.Context(), &review); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrItemNotInOrder):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrDuplicateReview):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) getItemReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListItemReviews(r.Context(), mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// createBulkReviews rates several items of one order; each item succeeds or
// fails on its own.
func (h *Handler) createBulkReviews(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OrderID      string `json:"order_id"`
		RestaurantID string `json:"restaurant_id"`
		Reviews      []struct {
			MenuItemID string `json:"menu_item_id"`
			Rating     int    `json:"rating"`
			Comment    string `json:"comment"`
		} `json:"reviews"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if payload.OrderID == "" || payload.RestaurantID == "" || len(payload.Reviews) == 0 {
		http.Error(w, "Missing order_id, restaurant_id or reviews", http.StatusBadRequest)
		return
	}

	type reviewResult struct {
		MenuItemID string `json:"menu_item_id"`
		Status     string `json:"status"`
		Message    string `json:"message,omitempty"`
	}

	results := make([]reviewResult, 0, len(payload.Reviews))
	successCount := 0

	for _, incoming := range payload.Reviews {
		review := domain.Review{
			MenuItemID:   incoming.MenuItemID,
			OrderID:      payload.OrderID,
			RestaurantID: payload.RestaurantID,
			Rating:       incoming.Rating,
			Comment:      incoming.Comment,
		}

		if err := h.Reviews.CreateOrUpdate(r.Context(), &review); err != nil {
			results = append(results, reviewResult{
				MenuItemID: incoming.MenuItemID,
				Status:     "error",
				Message:    err.Error(),
			})
			continue
		}

		successCount++
		results = append(results, reviewResult{MenuItemID: incoming.MenuItemID, Status: "ok"})
	}

	code := http.StatusCreated
	if successCount == 0 {
		code = http.StatusBadRequest
	}
	writeJSON(w, code, map[string]interface{}{
		"processed": results,
		"created":   successCount,
		"failed":    len(results) - successCount,
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
