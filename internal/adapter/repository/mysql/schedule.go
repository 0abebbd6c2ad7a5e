package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	scheduleDomain "sacco-loan-service/internal/domain/schedule"
)

type ScheduleRepository struct{ db *gorm.DB }

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Replace clears any previous schedule before inserting, so repeating a
// disbursement never leaves duplicated installments behind.
func (r *ScheduleRepository) Replace(ctx context.Context, applicationID uint64, entries []scheduleDomain.Installment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", applicationID).
			Delete(&scheduleDomain.Installment{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *ScheduleRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]scheduleDomain.Installment, error) {
	var out []scheduleDomain.Installment
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("number").
		Find(&out)
	return out, res.Error
}

func (r *ScheduleRepository) Save(ctx context.Context, i *scheduleDomain.Installment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *scheduleDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]scheduleDomain.Payment, error) {
	var out []scheduleDomain.Payment
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("paid_at").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) TotalPaid(ctx context.Context, applicationID uint64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	res := r.db.WithContext(ctx).Model(&scheduleDomain.Payment{}).
		Where("application_id = ?", applicationID).
		Select("SUM(amount)").
		Scan(&total)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
