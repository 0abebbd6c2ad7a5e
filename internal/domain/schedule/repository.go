package schedule

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// Replace clears any existing schedule for the application and writes
	// the new one in its place, so regeneration never duplicates entries.
	Replace(ctx context.Context, applicationID uint64, entries []Installment) error
	ListByApplication(ctx context.Context, applicationID uint64) ([]Installment, error)
	Save(ctx context.Context, i *Installment) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	ListByApplication(ctx context.Context, applicationID uint64) ([]Payment, error)
	TotalPaid(ctx context.Context, applicationID uint64) (decimal.Decimal, error)
}
