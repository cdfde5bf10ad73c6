package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PGRepo struct {
	db   *pgxpool.Pool
	cats *Categories
}

func NewPGRepo(db *pgxpool.Pool, cats *Categories) *PGRepo { return &PGRepo{db: db, cats: cats} }

const productColumns = `id, name, description, price::text, stock, category, expiry_date, is_featured,
	image_id, image_description, image_url, image_hint`

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Stock, &p.Category, &p.ExpiryDate, &p.IsFeatured,
		&p.Image.ID, &p.Image.Description, &p.Image.ImageURL, &p.Image.ImageHint)
	if err != nil {
		return Product{}, err
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return Product{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	return p, nil
}

func (r *PGRepo) query(ctx context.Context, where string, args ...any) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, "")
}

func (r *PGRepo) ListFeatured(ctx context.Context) ([]Product, error) {
	return r.query(ctx, "WHERE is_featured")
}

func (r *PGRepo) ListByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	return r.query(ctx, "WHERE category = $1", categoryID)
}

func (r *PGRepo) Get(ctx context.Context, id string) (Product, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, fmt.Errorf("get product: %w", err)
	}
	return p, true, nil
}

func (r *PGRepo) Add(ctx context.Context, in Input, img Image) (Product, error) {
	if err := in.Validate(r.cats); err != nil {
		return Product{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p := newProduct(in, img)
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, price, stock, category, expiry_date, is_featured,
			image_id, image_description, image_url, image_hint, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW())
	`, p.ID, p.Name, p.Description, p.Price.String(), p.Stock, p.Category, p.ExpiryDate, p.IsFeatured,
		p.Image.ID, p.Image.Description, p.Image.ImageURL, p.Image.ImageHint)
	if err != nil {
		return Product{}, fmt.Errorf("add product: %w", err)
	}
	return p, nil
}

func (r *PGRepo) Update(ctx context.Context, id string, in Input, img *Image) (Product, Image, error) {
	if err := in.Validate(r.cats); err != nil {
		return Product{}, Image{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Product{}, Image{}, fmt.Errorf("update product: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cur, err := scanProduct(tx.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, Image{}, ErrNotFound
	}
	if err != nil {
		return Product{}, Image{}, fmt.Errorf("update product: %w", err)
	}
	p := merge(cur, in, img)
	if _, err := tx.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, price=$4, stock=$5, category=$6, expiry_date=$7, is_featured=$8,
		    image_url=$9, image_hint=$10
		WHERE id=$1
	`, p.ID, p.Name, p.Description, p.Price.String(), p.Stock, p.Category, p.ExpiryDate, p.IsFeatured,
		p.Image.ImageURL, p.Image.ImageHint); err != nil {
		return Product{}, Image{}, fmt.Errorf("update product: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Product{}, Image{}, fmt.Errorf("update product: %w", err)
	}
	return p, cur.Image, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `DELETE FROM products WHERE id=$1 RETURNING `+productColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("delete product: %w", err)
	}
	return p, nil
}
