package httpapi

import (
	"context"

	"github.com/google/uuid"

	"github.com/saidafzal264-maker/Elevon-market/internal/ai"
	"github.com/saidafzal264-maker/Elevon-market/internal/catalog"
	"github.com/saidafzal264-maker/Elevon-market/internal/order"
)

type fakeCatalog struct {
	listFunc    func(ctx context.Context) ([]catalog.Product, error)
	getByIDFunc func(ctx context.Context, id string) (*catalog.Product, error)
	createFunc  func(ctx context.Context, req catalog.CreateProductRequest) (*catalog.Product, error)
	updateFunc  func(ctx context.Context, id string, req catalog.UpdateProductRequest) (*catalog.Product, error)
}

func (f *fakeCatalog) List(ctx context.Context) ([]catalog.Product, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeCatalog) Create(ctx context.Context, req catalog.CreateProductRequest) (*catalog.Product, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, req)
	}
	return nil, nil
}

func (f *fakeCatalog) Update(ctx context.Context, id string, req catalog.UpdateProductRequest) (*catalog.Product, error) {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, id, req)
	}
	return nil, nil
}

type fakeOrders struct {
	createFunc       func(ctx context.Context, o *order.Order) error
	getByIDFunc      func(ctx context.Context, orderID string) (*order.Order, error)
	listByUserFunc   func(ctx context.Context, userID string) ([]order.Order, error)
	updateStatusFunc func(ctx context.Context, orderID string, next order.Status) error
}

func (f *fakeOrders) Create(ctx context.Context, o *order.Order) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, o)
	}
	o.ID = uuid.NewString()
	return nil
}

func (f *fakeOrders) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (f *fakeOrders) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	if f.listByUserFunc != nil {
		return f.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, orderID string, next order.Status) error {
	if f.updateStatusFunc != nil {
		return f.updateStatusFunc(ctx, orderID, next)
	}
	return nil
}

type fakeMatcher struct {
	matchFunc   func(ctx context.Context, query string, candidates []ai.Candidate) ([]string, error)
	suggestFunc func(ctx context.Context, history []string, candidates []ai.Candidate) ([]string, error)
}

func (f *fakeMatcher) MatchProducts(ctx context.Context, query string, candidates []ai.Candidate) ([]string, error) {
	if f.matchFunc != nil {
		return f.matchFunc(ctx, query, candidates)
	}
	return []string{}, nil
}

func (f *fakeMatcher) SuggestProducts(ctx context.Context, history []string, candidates []ai.Candidate) ([]string, error) {
	if f.suggestFunc != nil {
		return f.suggestFunc(ctx, history, candidates)
	}
	return []string{}, nil
}

type fakePublisher struct {
	publishFunc func(ctx context.Context, o *order.Order) error
	calls       int
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	f.calls++
	if f.publishFunc != nil {
		return f.publishFunc(ctx, o)
	}
	return nil
}

func testProducts() []catalog.Product {
	discount := 14900000.0
	return []catalog.Product{
		{ID: "p1", Title: "iPhone 15 Pro Max", Description: "phone", Price: 15500000, DiscountPrice: &discount, SellerID: "s1", Stock: 15},
		{ID: "p2", Title: "Galaxy S24 Ultra", Description: "phone", Price: 13500000, SellerID: "s2", Stock: 20},
		{ID: "p3", Title: "Nike Tech Fleece Hoodie", Description: "hoodie", Price: 1200000, SellerID: "s1", Stock: 50},
	}
}
