package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	appDomain "sacco-loan-service/internal/domain/application"
	"sacco-loan-service/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications:  &ApplicationRepository{db: tx},
		LoanTypes:     &LoanTypeRepository{db: tx},
		Guarantors:    &GuarantorRepository{db: tx},
		Reviews:       &ReviewRepository{db: tx},
		Installments:  &ScheduleRepository{db: tx},
		Payments:      &PaymentRepository{db: tx},
		Notifications: &NotificationRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *appDomain.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the application row up-front to prevent races
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appDomain.ErrNotFound
			}
			return err
		}
		return fn(r, a)
	})
}
