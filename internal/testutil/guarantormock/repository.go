package guarantormock

import (
	"context"

	"gorm.io/gorm"

	"sacco-loan-service/internal/domain/guarantor"
)

// Repo is a function-backed mock that satisfies guarantor.Repository.
type Repo struct {
	CreateBatchFn       func(ctx context.Context, approvals []guarantor.Approval) error
	GetForGuarantorFn   func(ctx context.Context, applicationID uint64, guarantorID string) (*guarantor.Approval, error)
	ListByApplicationFn func(ctx context.Context, applicationID uint64) ([]guarantor.Approval, error)
	ListByGuarantorFn   func(ctx context.Context, guarantorID string) ([]guarantor.Approval, error)
	SaveFn              func(ctx context.Context, a *guarantor.Approval) error
}

func (m *Repo) CreateBatch(ctx context.Context, approvals []guarantor.Approval) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, approvals)
	}
	return nil
}

func (m *Repo) GetForGuarantor(ctx context.Context, applicationID uint64, guarantorID string) (*guarantor.Approval, error) {
	if m.GetForGuarantorFn != nil {
		return m.GetForGuarantorFn(ctx, applicationID, guarantorID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID uint64) ([]guarantor.Approval, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, nil
}

func (m *Repo) ListByGuarantor(ctx context.Context, guarantorID string) ([]guarantor.Approval, error) {
	if m.ListByGuarantorFn != nil {
		return m.ListByGuarantorFn(ctx, guarantorID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, a *guarantor.Approval) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
