package review

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("stage review not found")

type Repository interface {
	Create(ctx context.Context, r *StageReview) error
	GetByApplicationAndStage(ctx context.Context, applicationID uint64, stage Stage) (*StageReview, error)
	ListByApplication(ctx context.Context, applicationID uint64) ([]StageReview, error)
	Save(ctx context.Context, r *StageReview) error
}
