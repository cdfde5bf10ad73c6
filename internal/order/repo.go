package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MikeMC777/khattak-mart/internal/jsonfile"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order or payment status")
)

const idPrefix = "ORD-"

// FormatID renders sequence n as ORD-001, ORD-002, … (wider once n > 999).
func FormatID(n int64) string {
	return fmt.Sprintf("%s%03d", idPrefix, n)
}

func parseSeq(id string) (int64, bool) {
	s, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

type Repository interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, bool, error)
	Add(ctx context.Context, d Draft) (Order, error)
	UpdateStatus(ctx context.Context, id string, status Status, payment PaymentStatus) (Order, error)
	// Transition is UpdateStatus guarded by CheckTransition against the stored
	// status, read and written as one step.
	Transition(ctx context.Context, id string, status Status, payment PaymentStatus) (Order, error)
}

// JSONRepo keeps orders in a single JSON file. Ids continue from the highest
// sequence on disk, so they never depend on how many orders the file holds.
type JSONRepo struct {
	mu     sync.Mutex
	file   *jsonfile.Collection[Order]
	now    func() time.Time
	logger *zap.Logger
}

func NewJSONRepo(path string, logger *zap.Logger) *JSONRepo {
	return &JSONRepo{file: jsonfile.New[Order](path), now: time.Now, logger: logger}
}

func (r *JSONRepo) read() []Order {
	orders, err := r.file.Load()
	if err != nil {
		r.logger.Error("could not read orders, starting with empty list", zap.Error(err))
	}
	return orders
}

func (r *JSONRepo) List(ctx context.Context) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(), nil
}

func (r *JSONRepo) Get(ctx context.Context, id string) (Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.read() {
		if o.ID == id {
			return o, true, nil
		}
	}
	return Order{}, false, nil
}

func (r *JSONRepo) Add(ctx context.Context, d Draft) (Order, error) {
	if !d.PaymentMethod.Valid() || !d.PaymentStatus.Valid() || !d.OrderStatus.Valid() {
		return Order{}, ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.file.Load()
	if err != nil {
		return Order{}, fmt.Errorf("add order: %w", err)
	}
	var last int64
	for _, o := range orders {
		if n, ok := parseSeq(o.ID); ok && n > last {
			last = n
		}
	}
	o := d.order(FormatID(last+1), r.now().UTC())
	if err := r.file.Save(append(orders, o)); err != nil {
		return Order{}, fmt.Errorf("add order: %w", err)
	}
	return o, nil
}

func (r *JSONRepo) UpdateStatus(ctx context.Context, id string, status Status, payment PaymentStatus) (Order, error) {
	return r.setStatus(id, status, payment, false)
}

func (r *JSONRepo) Transition(ctx context.Context, id string, status Status, payment PaymentStatus) (Order, error) {
	return r.setStatus(id, status, payment, true)
}

func (r *JSONRepo) setStatus(id string, status Status, payment PaymentStatus, checked bool) (Order, error) {
	if !status.Valid() || !payment.Valid() {
		return Order{}, ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.file.Load()
	if err != nil {
		return Order{}, fmt.Errorf("update order status: %w", err)
	}
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if checked {
			if err := CheckTransition(orders[i].OrderStatus, status); err != nil {
				return Order{}, err
			}
		}
		orders[i].OrderStatus = status
		orders[i].PaymentStatus = payment
		if err := r.file.Save(orders); err != nil {
			return Order{}, fmt.Errorf("update order status: %w", err)
		}
		return orders[i], nil
	}
	return Order{}, ErrNotFound
}
