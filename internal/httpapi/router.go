package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/saidafzal264-maker/Elevon-market/internal/catalog"
	"github.com/saidafzal264-maker/Elevon-market/internal/middleware"
	"github.com/saidafzal264-maker/Elevon-market/internal/order"
)

type Deps struct {
	Logger *log.Logger

	Catalog   catalog.Repository
	Orders    order.Repository
	Matcher   Matcher
	Publisher OrderEventsPublisher

	CORSAllowOrigins []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.CORS(d.CORSAllowOrigins))

	r.Get("/health", healthHandler)

	products := NewProductHandler(d.Catalog)
	aih := NewAIHandler(d.Catalog, d.Matcher, d.Logger)
	orders := NewOrderHandler(d.Orders, d.Publisher, d.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", products.ListProducts)
		r.Post("/products", products.CreateProduct)
		r.Put("/products/{productId}", products.UpdateProduct)

		r.Post("/search", aih.Search)
		r.Post("/ai/recommendations", aih.Recommendations)

		r.Post("/orders", orders.CreateOrder)
		r.Get("/orders/{orderId}", orders.GetOrder)
		r.Get("/users/{userId}/orders", orders.ListOrdersByUser)
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "elevon-market",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
