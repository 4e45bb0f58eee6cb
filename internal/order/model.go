package order

import "time"

type Item struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order keeps the unit price of every item as it was at creation time. Catalog
// price changes never alter an existing order.
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Items     []Item    `json:"items"`
	Total     float64   `json:"total"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
