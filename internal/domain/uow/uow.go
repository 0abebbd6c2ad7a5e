package uow

import (
	"context"

	"sacco-loan-service/internal/domain/application"
	"sacco-loan-service/internal/domain/guarantor"
	"sacco-loan-service/internal/domain/notification"
	"sacco-loan-service/internal/domain/review"
	"sacco-loan-service/internal/domain/schedule"
)

type Repos struct {
	Applications  application.Repository
	LoanTypes     application.LoanTypeRepository
	Guarantors    guarantor.Repository
	Reviews       review.Repository
	Installments  schedule.Repository
	Payments      schedule.PaymentRepository
	Notifications notification.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in. Every
	// workflow transition runs through this so concurrent gate evaluations
	// on the same application serialize.
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
