package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `id, title, description, price, discount_price, category, images, video_url, rating, reviews_count, seller_id, stock, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	id := uuid.NewString()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, title, description, price, discount_price, category, images, video_url, seller_id, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+productColumns,
		id, req.Title, req.Description, req.Price, req.DiscountPrice,
		req.Category, req.Images, req.VideoURL, req.SellerID, req.Stock,
	)

	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	query := `UPDATE products SET updated_at = now()`
	args := []any{}
	argCount := 0

	set := func(column string, value any) {
		argCount++
		query += fmt.Sprintf(", %s = $%d", column, argCount)
		args = append(args, value)
	}

	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.Price != nil {
		set("price", *req.Price)
	}
	if req.DiscountPrice != nil {
		set("discount_price", *req.DiscountPrice)
	}
	if req.Category != nil {
		set("category", *req.Category)
	}
	if req.Images != nil {
		set("images", *req.Images)
	}
	if req.VideoURL != nil {
		set("video_url", *req.VideoURL)
	}
	if req.Stock != nil {
		set("stock", *req.Stock)
	}

	argCount++
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argCount, productColumns)
	args = append(args, id)

	row := r.pool.QueryRow(ctx, query, args...)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.DiscountPrice,
		&p.Category, &p.Images, &p.VideoURL, &p.Rating, &p.ReviewsCount,
		&p.SellerID, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	products := []Product{}
	for rows.Next() {
		var p Product
		err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.DiscountPrice,
			&p.Category, &p.Images, &p.VideoURL, &p.Rating, &p.ReviewsCount,
			&p.SellerID, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}
