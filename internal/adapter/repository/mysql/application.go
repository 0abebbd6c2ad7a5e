package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appDomain "sacco-loan-service/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Preload("LoanType").First(&out, id)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Preload("LoanType").
		Where("application_id = ?", applicationID).
		First(&out)
	return &out, res.Error
}

// GetByApplicationIDForUpdate takes a row lock so concurrent workflow actions
// on the same application serialize for the rest of the transaction.
func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	// Preload outside the locking clause; the lock is on the application row.
	if err := r.db.WithContext(ctx).First(&out.LoanType, out.LoanTypeID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ApplicationRepository) GetPendingByApplicant(ctx context.Context, applicantID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Where("applicant_id = ? AND status = ?", applicantID, appDomain.StatusPending).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).Preload("LoanType").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&out)
	return out, res.Error
}

type LoanTypeRepository struct{ db *gorm.DB }

func NewLoanTypeRepository(db *gorm.DB) *LoanTypeRepository {
	return &LoanTypeRepository{db: db}
}

func (r *LoanTypeRepository) GetByID(ctx context.Context, id uint64) (*appDomain.LoanType, error) {
	var out appDomain.LoanType
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *LoanTypeRepository) ListActive(ctx context.Context) ([]appDomain.LoanType, error) {
	var out []appDomain.LoanType
	res := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&out)
	return out, res.Error
}
