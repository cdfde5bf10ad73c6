package admin

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/MikeMC777/khattak-mart/internal/order"
	"github.com/MikeMC777/khattak-mart/internal/result"
	"github.com/MikeMC777/khattak-mart/internal/validation"
)

// StatusUpdate is the admin's order status form.
// swagger:model StatusUpdate
type StatusUpdate struct {
	OrderStatus   order.Status        `json:"orderStatus" example:"Confirmed"`
	PaymentStatus order.PaymentStatus `json:"paymentStatus" example:"Paid"`
}

type Orders struct {
	repo   order.Repository
	logger *zap.Logger
}

func NewOrders(repo order.Repository, logger *zap.Logger) *Orders {
	return &Orders{repo: repo, logger: logger}
}

func (o *Orders) List(ctx context.Context) ([]order.Order, error) {
	return o.repo.List(ctx)
}

// UpdateStatus enforces the order lifecycle before writing both status fields.
func (o *Orders) UpdateStatus(ctx context.Context, id string, in StatusUpdate) result.Result[order.Order] {
	verr := &validation.Error{}
	if !in.OrderStatus.Valid() {
		verr.Add("orderStatus", "Unknown order status.")
	}
	if !in.PaymentStatus.Valid() {
		verr.Add("paymentStatus", "Unknown payment status.")
	}
	if err := verr.OrNil(); err != nil {
		return result.Invalid[order.Order](err)
	}

	up, err := o.repo.Transition(ctx, id, in.OrderStatus, in.PaymentStatus)
	var terr *order.TransitionError
	switch {
	case errors.Is(err, order.ErrNotFound):
		return result.NotFound[order.Order]("Order not found")
	case errors.As(err, &terr):
		return result.Conflict[order.Order](terr.Error())
	case err != nil:
		o.logger.Error("Failed to update order", zap.String("order_id", id), zap.Error(err))
		return result.Fail[order.Order]("Failed to update order")
	}
	o.logger.Info("Order updated",
		zap.String("order_id", id),
		zap.String("order_status", string(up.OrderStatus)),
		zap.String("payment_status", string(up.PaymentStatus)))
	return result.OK("Order updated successfully", up)
}
