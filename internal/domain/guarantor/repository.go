package guarantor

import "context"

type Repository interface {
	CreateBatch(ctx context.Context, approvals []Approval) error
	// GetForGuarantor returns the nomination slot for one guarantor on one
	// application, or a not-found error if the guarantor was never nominated.
	GetForGuarantor(ctx context.Context, applicationID uint64, guarantorID string) (*Approval, error)
	ListByApplication(ctx context.Context, applicationID uint64) ([]Approval, error)
	ListByGuarantor(ctx context.Context, guarantorID string) ([]Approval, error)
	Save(ctx context.Context, a *Approval) error
}
