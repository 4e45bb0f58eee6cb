package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/saidafzal264-maker/Elevon-market/internal/ai"
	"github.com/saidafzal264-maker/Elevon-market/internal/catalog"
)

// Matcher is the slice of the inference client the handlers need.
type Matcher interface {
	MatchProducts(ctx context.Context, query string, candidates []ai.Candidate) ([]string, error)
	SuggestProducts(ctx context.Context, history []string, candidates []ai.Candidate) ([]string, error)
}

type AIHandler struct {
	catalog catalog.Repository
	matcher Matcher
	logger  *log.Logger
}

func NewAIHandler(catalogRepo catalog.Repository, matcher Matcher, logger *log.Logger) *AIHandler {
	return &AIHandler{catalog: catalogRepo, matcher: matcher, logger: logger}
}

// Search resolves a free-text query to catalog products via the model. Model or
// catalog failures surface as 500; recommendations below deliberately do not.
func (h *AIHandler) Search(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Query == "" {
		writeError(w, http.StatusBadRequest, "query required")
		return
	}

	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Printf("search: load catalog: %v", err)
		writeError(w, http.StatusInternalServerError, "AI search failed")
		return
	}

	candidates := make([]ai.Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, ai.Candidate{ID: p.ID, Title: p.Title, Description: p.Description})
	}

	ids, err := h.matcher.MatchProducts(r.Context(), body.Query, candidates)
	if err != nil {
		h.logger.Printf("search: model call: %v", err)
		writeError(w, http.StatusInternalServerError, "AI search failed")
		return
	}

	writeJSON(w, http.StatusOK, filterByIDs(products, ids))
}

// Recommendations is fail-soft end to end: any failure, including a bad request
// body, degrades to an empty id list rather than an error response.
func (h *AIHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var body struct {
		History []string `json:"history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.History) == 0 {
		writeJSON(w, http.StatusOK, []string{})
		return
	}

	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Printf("recommendations: load catalog: %v", err)
		writeJSON(w, http.StatusOK, []string{})
		return
	}

	candidates := make([]ai.Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, ai.Candidate{ID: p.ID, Title: p.Title})
	}

	ids, err := h.matcher.SuggestProducts(r.Context(), body.History, candidates)
	if err != nil {
		h.logger.Printf("recommendations: model call: %v", err)
		writeJSON(w, http.StatusOK, []string{})
		return
	}

	known := make(map[string]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}
	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			filtered = append(filtered, id)
		}
	}

	writeJSON(w, http.StatusOK, filtered)
}

// filterByIDs keeps the products named by ids, in the order ids lists them.
// Unknown ids are dropped.
func filterByIDs(products []catalog.Product, ids []string) []catalog.Product {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
