package appmock

import (
	"context"

	"gorm.io/gorm"

	domain "sacco-loan-service/internal/domain/application"
)

// Repo is a function-backed mock that satisfies application.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByIDFn                     func(ctx context.Context, id uint64) (*domain.Application, error)
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetPendingByApplicantFn       func(ctx context.Context, applicantID string) (*domain.Application, error)
	ListByApplicantFn             func(ctx context.Context, applicantID string) ([]domain.Application, error)
	SaveFn                        func(ctx context.Context, a *domain.Application) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetPendingByApplicant(ctx context.Context, applicantID string) (*domain.Application, error) {
	if m.GetPendingByApplicantFn != nil {
		return m.GetPendingByApplicantFn(ctx, applicantID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	if m.ListByApplicantFn != nil {
		return m.ListByApplicantFn(ctx, applicantID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

// TypeRepo mocks application.LoanTypeRepository.
type TypeRepo struct {
	GetByIDFn    func(ctx context.Context, id uint64) (*domain.LoanType, error)
	ListActiveFn func(ctx context.Context) ([]domain.LoanType, error)
}

func (m *TypeRepo) GetByID(ctx context.Context, id uint64) (*domain.LoanType, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *TypeRepo) ListActive(ctx context.Context) ([]domain.LoanType, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}
