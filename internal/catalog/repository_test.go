package catalog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{
	"id", "title", "description", "price", "discount_price", "category",
	"images", "video_url", "rating", "reviews_count", "seller_id", "stock",
	"created_at", "updated_at",
}

func productRow(mock pgxmock.PgxPoolIface, id, title string, price float64, discount *float64) *pgxmock.Rows {
	return mock.NewRows(productCols).AddRow(
		id, title, "desc", price, discount, "Elektronika",
		[]string{"img1"}, (*string)(nil), 4.5, 10, "s1", 3,
		time.Unix(0, 0), time.Unix(0, 0),
	)
}

func TestList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	discount := 14900000.0
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+productColumns+` FROM products ORDER BY created_at ASC`)).
		WillReturnRows(productRow(mock, "p1", "iPhone", 15500000, &discount).AddRow(
			"p3", "Hoodie", "desc", 1200000.0, (*float64)(nil), "Kiyimlar",
			[]string{"img3"}, (*string)(nil), 4.7, 312, "s1", 50,
			time.Unix(0, 0), time.Unix(0, 0),
		))

	repo := NewPostgresRepository(mock)
	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "p1", products[0].ID)
	require.NotNil(t, products[0].DiscountPrice)
	assert.Equal(t, 14900000.0, *products[0].DiscountPrice)
	assert.Equal(t, 14900000.0, products[0].EffectivePrice())

	assert.Equal(t, "p3", products[1].ID)
	assert.Nil(t, products[1].DiscountPrice)
	assert.Equal(t, 1200000.0, products[1].EffectivePrice())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = $1`)).
			WithArgs("p1").
			WillReturnRows(productRow(mock, "p1", "iPhone", 15500000, nil))

		repo := NewPostgresRepository(mock)
		p, err := repo.GetByID(context.Background(), "p1")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "iPhone", p.Title)
	})

	t.Run("missing returns nil", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = $1`)).
			WithArgs("nope").
			WillReturnError(pgx.ErrNoRows)

		repo := NewPostgresRepository(mock)
		p, err := repo.GetByID(context.Background(), "nope")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("missing returns nil", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		price := 100.0
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE products SET updated_at = now(), price = $1 WHERE id = $2`)).
			WithArgs(price, "nope").
			WillReturnError(pgx.ErrNoRows)

		repo := NewPostgresRepository(mock)
		p, err := repo.Update(context.Background(), "nope", UpdateProductRequest{Price: &price})
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("updates provided fields only", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		stock := 7
		title := "New title"
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE products SET updated_at = now(), title = $1, stock = $2 WHERE id = $3`)).
			WithArgs(title, stock, "p1").
			WillReturnRows(productRow(mock, "p1", title, 15500000, nil))

		repo := NewPostgresRepository(mock)
		p, err := repo.Update(context.Background(), "p1", UpdateProductRequest{Title: &title, Stock: &stock})
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, title, p.Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
