package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// GetByApplicationIDForUpdate locks the row for the duration of the
	// surrounding transaction (SELECT ... FOR UPDATE).
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	GetPendingByApplicant(ctx context.Context, applicantID string) (*Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]Application, error)
	Save(ctx context.Context, a *Application) error
}

type LoanTypeRepository interface {
	GetByID(ctx context.Context, id uint64) (*LoanType, error)
	ListActive(ctx context.Context) ([]LoanType, error)
}
