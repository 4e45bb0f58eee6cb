package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saidafzal264-maker/Elevon-market/internal/order"
)

func newOrderRouter(repo order.Repository, pub OrderEventsPublisher) http.Handler {
	return NewRouter(Deps{
		Logger:           discardLogger(),
		Catalog:          &fakeCatalog{},
		Orders:           repo,
		Matcher:          &fakeMatcher{},
		Publisher:        pub,
		CORSAllowOrigins: []string{"*"},
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		h := NewOrderHandler(&fakeOrders{}, nil, discardLogger())
		r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(`{`))
		w := httptest.NewRecorder()

		h.CreateOrder(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing userId", func(t *testing.T) {
		h := NewOrderHandler(&fakeOrders{}, nil, discardLogger())
		r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(`{"items":[],"total":0}`))
		w := httptest.NewRecorder()

		h.CreateOrder(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("created with snapshot prices", func(t *testing.T) {
		var saved *order.Order
		repo := &fakeOrders{createFunc: func(ctx context.Context, o *order.Order) error {
			o.ID = "o1"
			saved = o
			return nil
		}}
		pub := &fakePublisher{}
		h := NewOrderHandler(repo, pub, discardLogger())

		body := `{"userId":"u1","items":[{"productId":"p1","quantity":2,"price":14900000},{"productId":"p3","quantity":1,"price":1200000}],"total":31000000}`
		r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		h.CreateOrder(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, saved)
		assert.Equal(t, "u1", saved.UserID)
		assert.Equal(t, 31000000.0, saved.Total)
		assert.Equal(t, order.StatusPending, saved.Status)
		assert.Equal(t, 1, pub.calls)

		var resp order.Order
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "o1", resp.ID)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, 14900000.0, resp.Items[0].Price)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &fakeOrders{createFunc: func(ctx context.Context, o *order.Order) error {
			return errors.New("db down")
		}}
		pub := &fakePublisher{}
		h := NewOrderHandler(repo, pub, discardLogger())
		r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(`{"userId":"u1","items":[],"total":0}`))
		w := httptest.NewRecorder()

		h.CreateOrder(w, r)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, 0, pub.calls, "no event for an order that was not stored")
	})

	t.Run("publish failure does not fail the order", func(t *testing.T) {
		repo := &fakeOrders{}
		pub := &fakePublisher{publishFunc: func(ctx context.Context, o *order.Order) error {
			return errors.New("rabbit down")
		}}
		h := NewOrderHandler(repo, pub, discardLogger())
		r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(`{"userId":"u1","items":[],"total":0}`))
		w := httptest.NewRecorder()

		h.CreateOrder(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &fakeOrders{getByIDFunc: func(ctx context.Context, orderID string) (*order.Order, error) {
			return &order.Order{ID: orderID, UserID: "u1", Status: order.StatusPending, CreatedAt: time.Unix(0, 0)}, nil
		}}
		router := newOrderRouter(repo, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/orders/o1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp order.Order
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "o1", resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		router := newOrderRouter(&fakeOrders{}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/orders/missing", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListOrdersByUser(t *testing.T) {
	repo := &fakeOrders{listByUserFunc: func(ctx context.Context, userID string) ([]order.Order, error) {
		return []order.Order{{ID: "o1", UserID: userID}, {ID: "o2", UserID: userID}}, nil
	}}
	router := newOrderRouter(repo, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/users/u1/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []order.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}
