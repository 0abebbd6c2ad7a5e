package schedmock

import (
	"context"

	"github.com/shopspring/decimal"

	"sacco-loan-service/internal/domain/schedule"
)

// Repo is a function-backed mock that satisfies schedule.Repository.
type Repo struct {
	ReplaceFn           func(ctx context.Context, applicationID uint64, entries []schedule.Installment) error
	ListByApplicationFn func(ctx context.Context, applicationID uint64) ([]schedule.Installment, error)
	SaveFn              func(ctx context.Context, i *schedule.Installment) error
}

func (m *Repo) Replace(ctx context.Context, applicationID uint64, entries []schedule.Installment) error {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, applicationID, entries)
	}
	return nil
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID uint64) ([]schedule.Installment, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, i *schedule.Installment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}

// PaymentRepo mocks schedule.PaymentRepository.
type PaymentRepo struct {
	CreateFn            func(ctx context.Context, p *schedule.Payment) error
	ListByApplicationFn func(ctx context.Context, applicationID uint64) ([]schedule.Payment, error)
	TotalPaidFn         func(ctx context.Context, applicationID uint64) (decimal.Decimal, error)
}

func (m *PaymentRepo) Create(ctx context.Context, p *schedule.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *PaymentRepo) ListByApplication(ctx context.Context, applicationID uint64) ([]schedule.Payment, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, nil
}

func (m *PaymentRepo) TotalPaid(ctx context.Context, applicationID uint64) (decimal.Decimal, error) {
	if m.TotalPaidFn != nil {
		return m.TotalPaidFn(ctx, applicationID)
	}
	return decimal.Zero, nil
}
