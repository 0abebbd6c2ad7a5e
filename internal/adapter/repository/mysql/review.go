package mysql

import (
	"context"

	"gorm.io/gorm"

	reviewDomain "sacco-loan-service/internal/domain/review"
)

type ReviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rec *reviewDomain.StageReview) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ReviewRepository) Save(ctx context.Context, rec *reviewDomain.StageReview) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *ReviewRepository) GetByApplicationAndStage(ctx context.Context, applicationID uint64, stage reviewDomain.Stage) (*reviewDomain.StageReview, error) {
	var out reviewDomain.StageReview
	res := r.db.WithContext(ctx).
		Where("application_id = ? AND stage = ?", applicationID, stage).
		First(&out)
	return &out, res.Error
}

func (r *ReviewRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]reviewDomain.StageReview, error) {
	var out []reviewDomain.StageReview
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id").
		Find(&out)
	return out, res.Error
}
