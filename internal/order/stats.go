package order

import (
	"context"
	"strings"
)

// Stats is the admin dashboard summary.
// swagger:model
type Stats struct {
	TotalOrders int `json:"totalOrders"`
	PendingCOD  int `json:"pendingCOD"`
	PaidOrders  int `json:"paidOrders"`
}

func ComputeStats(orders []Order) Stats {
	s := Stats{TotalOrders: len(orders)}
	for _, o := range orders {
		if o.PaymentMethod == MethodCOD && strings.HasPrefix(string(o.PaymentStatus), "Pending") {
			s.PendingCOD++
		}
		if o.PaymentStatus == PaymentPaid {
			s.PaidOrders++
		}
	}
	return s
}

// Dashboard recomputes the stats from the store on every call.
type Dashboard struct {
	repo Repository
}

func NewDashboard(repo Repository) *Dashboard { return &Dashboard{repo: repo} }

func (d *Dashboard) ComputeStats(ctx context.Context) (Stats, error) {
	orders, err := d.repo.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(orders), nil
}
