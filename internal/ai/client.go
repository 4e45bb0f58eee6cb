package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Candidate is the slice of a product the model is allowed to see: enough to
// match on, small enough to keep the prompt bounded.
type Candidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"desc,omitempty"`
}

// Client talks to the Gemini generateContent endpoint. The model is used as an
// opaque classifier: every request constrains the response to a JSON array of
// strings and anything that does not parse as one is treated as no result.
type Client struct {
	baseURL *url.URL
	apiKey  string
	model   string
	http    *http.Client
}

func NewClient(baseURL, apiKey, model string, httpClient *http.Client) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid gemini base url %q: %v", baseURL, err))
	}
	return &Client{baseURL: u, apiKey: apiKey, model: model, http: httpClient}
}

// MatchProducts asks the model which candidate ids match the semantic intent of
// the query. The returned order is the model's order.
func (c *Client) MatchProducts(ctx context.Context, query string, candidates []Candidate) ([]string, error) {
	list, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}
	prompt := fmt.Sprintf("Search query: %q. Products: %s. Return matched IDs as JSON array.", query, list)
	return c.generate(ctx, prompt)
}

// SuggestProducts asks the model for product ids a user with the given browsing
// history is likely to want. Three ids are requested but any count is accepted.
func (c *Client) SuggestProducts(ctx context.Context, history []string, candidates []Candidate) ([]string, error) {
	list, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}
	hist, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	prompt := fmt.Sprintf("User browsing history: %s. Available products: %s. Suggest the 3 best product IDs as JSON array.", hist, list)
	return c.generate(ctx, prompt)
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   responseSchema `json:"responseSchema"`
}

type responseSchema struct {
	Type  string               `json:"type"`
	Items *responseSchemaItems `json:"items,omitempty"`
}

type responseSchemaItems struct {
	Type string `json:"type"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) ([]string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: responseSchema{
				Type:  "ARRAY",
				Items: &responseSchemaItems{Type: "STRING"},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	rel := &url.URL{Path: "/v1beta/models/" + c.model + ":generateContent"}
	u := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return parseIDs(gr), nil
}

// parseIDs extracts the constrained JSON array from the first candidate part.
// Anything that is not a string array yields an empty list, never an error.
func parseIDs(gr generateResponse) []string {
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(gr.Candidates[0].Content.Parts[0].Text), &ids); err != nil {
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}
