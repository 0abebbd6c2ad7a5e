package mysql

import (
	"context"

	"gorm.io/gorm"

	guarantorDomain "sacco-loan-service/internal/domain/guarantor"
)

type GuarantorRepository struct{ db *gorm.DB }

func NewGuarantorRepository(db *gorm.DB) *GuarantorRepository {
	return &GuarantorRepository{db: db}
}

func (r *GuarantorRepository) CreateBatch(ctx context.Context, approvals []guarantorDomain.Approval) error {
	if len(approvals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&approvals).Error
}

func (r *GuarantorRepository) GetForGuarantor(ctx context.Context, applicationID uint64, guarantorID string) (*guarantorDomain.Approval, error) {
	var out guarantorDomain.Approval
	res := r.db.WithContext(ctx).
		Where("application_id = ? AND guarantor_id = ?", applicationID, guarantorID).
		First(&out)
	return &out, res.Error
}

func (r *GuarantorRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]guarantorDomain.Approval, error) {
	var out []guarantorDomain.Approval
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id").
		Find(&out)
	return out, res.Error
}

func (r *GuarantorRepository) ListByGuarantor(ctx context.Context, guarantorID string) ([]guarantorDomain.Approval, error) {
	var out []guarantorDomain.Approval
	res := r.db.WithContext(ctx).
		Where("guarantor_id = ?", guarantorID).
		Order("created_at DESC").
		Find(&out)
	return out, res.Error
}

func (r *GuarantorRepository) Save(ctx context.Context, a *guarantorDomain.Approval) error {
	return r.db.WithContext(ctx).Save(a).Error
}
