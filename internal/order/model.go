package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/khattak-mart/internal/catalog"
)

type PaymentMethod string

const (
	MethodCOD  PaymentMethod = "COD"
	MethodCard PaymentMethod = "Card"
)

type PaymentStatus string

const (
	PaymentPendingCOD          PaymentStatus = "Pending Payment - COD"
	PaymentPaid                PaymentStatus = "Paid"
	PaymentPendingVerification PaymentStatus = "Pending Verification"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

func (m PaymentMethod) Valid() bool { return m == MethodCOD || m == MethodCard }

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPendingCOD, PaymentPaid, PaymentPendingVerification:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CartItem is the product snapshot taken when the customer checked out.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"100"`
	Quantity int             `json:"quantity"`
	Image    catalog.Image   `json:"image"`
}

func (it CartItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Total sums price × quantity over items.
func Total(items []CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

type Order struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	CustomerAddress string          `json:"customerAddress"`
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total" swaggertype:"string" example:"250"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	OrderStatus     Status          `json:"orderStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
	PaymentProofURL string          `json:"paymentProofUrl,omitempty"`
}

// Draft is an order before the store assigns its id and timestamp.
type Draft struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []CartItem
	Total           decimal.Decimal
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	OrderStatus     Status
	PaymentProofURL string
}

func (d Draft) order(id string, at time.Time) Order {
	return Order{
		ID:              id,
		CustomerName:    d.CustomerName,
		CustomerPhone:   d.CustomerPhone,
		CustomerAddress: d.CustomerAddress,
		Items:           append([]CartItem(nil), d.Items...),
		Total:           d.Total,
		PaymentMethod:   d.PaymentMethod,
		PaymentStatus:   d.PaymentStatus,
		OrderStatus:     d.OrderStatus,
		CreatedAt:       at,
		PaymentProofURL: d.PaymentProofURL,
	}
}
