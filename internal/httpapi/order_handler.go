package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/saidafzal264-maker/Elevon-market/internal/order"
)

type OrderEventsPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
}

type OrderHandler struct {
	repo      order.Repository
	publisher OrderEventsPublisher
	logger    *log.Logger
}

func NewOrderHandler(repo order.Repository, publisher OrderEventsPublisher, logger *log.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, publisher: publisher, logger: logger}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string       `json:"userId"`
		Items  []order.Item `json:"items"`
		Total  float64      `json:"total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing userId")
		return
	}

	o := &order.Order{
		UserID:    body.UserID,
		Items:     body.Items,
		Total:     body.Total,
		Status:    order.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.Create(ctx, o); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	// The order exists regardless of whether downstream hears about it.
	if h.publisher != nil {
		if err := h.publisher.PublishOrderCreated(ctx, o); err != nil {
			h.logger.Printf("publish OrderCreated for %s: %v", o.ID, err)
		}
	}

	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing orderId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.repo.GetByID(ctx, orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) ListOrdersByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing userId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.repo.ListByUser(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
