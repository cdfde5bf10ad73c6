package order

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MikeMC777/khattak-mart/internal/notify"
	"github.com/MikeMC777/khattak-mart/internal/result"
	"github.com/MikeMC777/khattak-mart/internal/validation"
)

// phonePattern is a Pakistani mobile number: 03 followed by nine digits.
var phonePattern = regexp.MustCompile(`^03\d{9}$`)

// Checkout is the submitted cart plus shipping form.
// swagger:model Checkout
type Checkout struct {
	Name          string          `json:"name" validate:"min=2" msg:"Name must be at least 2 characters."`
	Phone         string          `json:"phone"`
	Address       string          `json:"address" validate:"min=10" msg:"Address must be at least 10 characters."`
	PaymentMethod PaymentMethod   `json:"paymentMethod" validate:"oneof=COD Card" msg:"Please select a payment method."`
	Items         []CartItem      `json:"cartItems"`
	Total         decimal.Decimal `json:"cartTotal" swaggertype:"string"`
	// PaymentProofURL is the stored upload; required for Card payments.
	PaymentProofURL string `json:"paymentProofUrl,omitempty"`
}

func (c Checkout) validate() error {
	err := validation.Struct(c)
	if err != nil && !validation.IsValidation(err) {
		return err
	}
	verr, _ := err.(*validation.Error)
	if verr == nil {
		verr = &validation.Error{}
	}
	if !phonePattern.MatchString(c.Phone) {
		verr.Add("phone", "Please enter a valid Pakistani phone number (03xxxxxxxxx).")
	}
	if len(c.Items) == 0 {
		verr.Add("cartItems", "Your cart is empty.")
	}
	for i, it := range c.Items {
		if it.Quantity < 1 {
			verr.Add("cartItems", fmt.Sprintf("Item %d: quantity must be at least 1.", i+1))
		}
		if !it.Price.IsPositive() {
			verr.Add("cartItems", fmt.Sprintf("Item %d: price must be a positive number.", i+1))
		} else if !validation.Cents(it.Price) {
			verr.Add("cartItems", fmt.Sprintf("Item %d: price can have at most 2 decimal places.", i+1))
		}
	}
	if c.PaymentMethod == MethodCard && c.PaymentProofURL == "" {
		verr.Add("paymentProof", "Payment proof is required for card payments.")
	}
	if len(c.Items) > 0 && !c.Total.IsZero() && !c.Total.Equal(Total(c.Items)) {
		verr.Add("cartTotal", "Cart total does not match the items.")
	}
	return verr.OrNil()
}

// Placed is returned to the customer after checkout.
// swagger:model
type Placed struct {
	OrderID     string `json:"orderId"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
}

// Placement validates a checkout, records the order and prepares the
// confirmation message for the shop.
type Placement struct {
	repo        Repository
	notifier    notify.Dispatcher
	storeName   string
	destination string
	logger      *zap.Logger
}

func NewPlacement(repo Repository, notifier notify.Dispatcher, storeName, destination string, logger *zap.Logger) *Placement {
	return &Placement{repo: repo, notifier: notifier, storeName: storeName, destination: destination, logger: logger}
}

func initialPaymentStatus(m PaymentMethod) PaymentStatus {
	if m == MethodCOD {
		return PaymentPendingCOD
	}
	return PaymentPendingVerification
}

func (p *Placement) Place(ctx context.Context, in Checkout) result.Result[Placed] {
	if err := in.validate(); err != nil {
		if validation.IsValidation(err) {
			return result.Invalid[Placed](err)
		}
		p.logger.Error("validate checkout", zap.Error(err))
		return result.Fail[Placed]("Failed to place order.")
	}

	o, err := p.repo.Add(ctx, Draft{
		CustomerName:    in.Name,
		CustomerPhone:   in.Phone,
		CustomerAddress: in.Address,
		Items:           in.Items,
		Total:           Total(in.Items),
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   initialPaymentStatus(in.PaymentMethod),
		OrderStatus:     StatusPending,
		PaymentProofURL: in.PaymentProofURL,
	})
	if err != nil {
		p.logger.Error("Failed to place order", zap.Error(err))
		return result.Fail[Placed]("Failed to place order.")
	}

	out := Placed{OrderID: o.ID, Message: Message(p.storeName, o)}
	if link, err := p.notifier.Dispatch(ctx, p.destination, out.Message); err != nil {
		p.logger.Warn("build order notification", zap.String("order_id", o.ID), zap.Error(err))
	} else {
		out.WhatsAppURL = link
	}

	p.logger.Info("Order placed",
		zap.String("order_id", o.ID),
		zap.String("payment_method", string(o.PaymentMethod)),
		zap.String("total", o.Total.String()))
	return result.OK("Order placed successfully.", out)
}
