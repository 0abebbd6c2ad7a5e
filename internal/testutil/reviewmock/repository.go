package reviewmock

import (
	"context"

	"sacco-loan-service/internal/domain/review"
)

// Repo is a function-backed mock that satisfies review.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, r *review.StageReview) error
	GetByApplicationAndStageFn func(ctx context.Context, applicationID uint64, stage review.Stage) (*review.StageReview, error)
	ListByApplicationFn        func(ctx context.Context, applicationID uint64) ([]review.StageReview, error)
	SaveFn                     func(ctx context.Context, r *review.StageReview) error
}

func (m *Repo) Create(ctx context.Context, r *review.StageReview) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByApplicationAndStage(ctx context.Context, applicationID uint64, stage review.Stage) (*review.StageReview, error) {
	if m.GetByApplicationAndStageFn != nil {
		return m.GetByApplicationAndStageFn(ctx, applicationID, stage)
	}
	return nil, review.ErrNotFound
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID uint64) ([]review.StageReview, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, r *review.StageReview) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
