// Package checkout turns the cart into an order. Prices are snapshotted from
// the catalog at the moment of checkout, so later price edits never change
// what the shopper was charged.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/saidafzal264-maker/Elevon-market/internal/cart"
	"github.com/saidafzal264-maker/Elevon-market/internal/catalog"
	"github.com/saidafzal264-maker/Elevon-market/internal/client"
	"github.com/saidafzal264-maker/Elevon-market/internal/order"
)

var ErrEmptyOrder = errors.New("checkout: nothing to order")

type OrderPlacer interface {
	CreateOrder(ctx context.Context, req client.CreateOrderRequest) (*order.Order, error)
}

type Cart interface {
	Entries() []cart.Entry
	Clear() error
}

type Service struct {
	placer OrderPlacer
	cart   Cart
}

func NewService(placer OrderPlacer, c Cart) *Service {
	return &Service{placer: placer, cart: c}
}

// BuildOrder resolves cart entries against the catalog. Each line is priced at
// the product's effective price (discount when present). Entries whose product
// is no longer in the catalog are dropped.
func BuildOrder(entries []cart.Entry, products []catalog.Product) ([]order.Item, float64) {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]order.Item, 0, len(entries))
	var total float64
	for _, e := range entries {
		p, ok := byID[e.ProductID]
		if !ok {
			continue
		}
		price := p.EffectivePrice()
		items = append(items, order.Item{
			ProductID: e.ProductID,
			Quantity:  e.Quantity,
			Price:     price,
		})
		total += price * float64(e.Quantity)
	}
	return items, total
}

// PlaceOrder builds an order from the current cart, submits it, and clears the
// cart only after the order is accepted.
func (s *Service) PlaceOrder(ctx context.Context, userID string, products []catalog.Product) (*order.Order, error) {
	items, total := BuildOrder(s.cart.Entries(), products)
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	placed, err := s.placer.CreateOrder(ctx, client.CreateOrderRequest{
		UserID: userID,
		Items:  items,
		Total:  total,
	})
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	if err := s.cart.Clear(); err != nil {
		return placed, fmt.Errorf("order %s placed, but clearing cart failed: %w", placed.ID, err)
	}
	return placed, nil
}
