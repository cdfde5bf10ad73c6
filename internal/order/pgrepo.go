package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGRepo stores orders in PostgreSQL. Ids come from order_seq, so concurrent
// checkouts never share a sequence number.
type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `id, customer_name, customer_phone, customer_address, items, total::text,
	payment_method, payment_status, order_status, created_at, payment_proof_url`

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o     Order
		items []byte
		total string
	)
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress, &items, &total,
		&o.PaymentMethod, &o.PaymentStatus, &o.OrderStatus, &o.CreatedAt, &o.PaymentProofURL); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return Order{}, fmt.Errorf("decode items: %w", err)
	}
	var err error
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return Order{}, fmt.Errorf("parse total %q: %w", total, err)
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return o, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Order, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, false, nil
	}
	if err != nil {
		return Order{}, false, fmt.Errorf("get order: %w", err)
	}
	return o, true, nil
}

func (r *PGRepo) Add(ctx context.Context, d Draft) (Order, error) {
	if !d.PaymentMethod.Valid() || !d.PaymentStatus.Valid() || !d.OrderStatus.Valid() {
		return Order{}, ErrInvalidStatus
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items, err := json.Marshal(d.Items)
	if err != nil {
		return Order{}, fmt.Errorf("encode items: %w", err)
	}
	o, err := scanOrder(r.db.QueryRow(ctx, `
		WITH next AS (SELECT nextval('order_seq') AS n)
		INSERT INTO orders (id, seq, customer_name, customer_phone, customer_address, items, total,
			payment_method, payment_status, order_status, payment_proof_url, created_at)
		SELECT 'ORD-' || lpad(n::text, GREATEST(3, length(n::text)), '0'), n, $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW() FROM next
		RETURNING `+orderColumns,
		d.CustomerName, d.CustomerPhone, d.CustomerAddress, items, d.Total.String(),
		string(d.PaymentMethod), string(d.PaymentStatus), string(d.OrderStatus), d.PaymentProofURL))
	if err != nil {
		return Order{}, fmt.Errorf("add order: %w", err)
	}
	return o, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status, payment PaymentStatus) (Order, error) {
	if !status.Valid() || !payment.Valid() {
		return Order{}, ErrInvalidStatus
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
		UPDATE orders SET order_status=$2, payment_status=$3
		WHERE id=$1
		RETURNING `+orderColumns, id, string(status), string(payment)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

func (r *PGRepo) Transition(ctx context.Context, id string, status Status, payment PaymentStatus) (Order, error) {
	if !status.Valid() || !payment.Valid() {
		return Order{}, ErrInvalidStatus
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, fmt.Errorf("transition order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur string
	err = tx.QueryRow(ctx, `SELECT order_status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("transition order: %w", err)
	}
	if err := CheckTransition(Status(cur), status); err != nil {
		return Order{}, err
	}
	o, err := scanOrder(tx.QueryRow(ctx, `
		UPDATE orders SET order_status=$2, payment_status=$3
		WHERE id=$1
		RETURNING `+orderColumns, id, string(status), string(payment)))
	if err != nil {
		return Order{}, fmt.Errorf("transition order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("transition order: %w", err)
	}
	return o, nil
}
