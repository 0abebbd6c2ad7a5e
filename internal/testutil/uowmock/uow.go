package uowmock

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sacco-loan-service/internal/domain/application"
	"sacco-loan-service/internal/domain/uow"
)

// UoW runs the callback against a fixed set of mocked repos, no real
// transaction involved. WithinApplicationTx locks nothing; it just loads
// the application through the mocked repo the way the real one does.
type UoW struct {
	Repos uow.Repos

	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApplicationTxFn func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
	if m.WithinApplicationTxFn != nil {
		return m.WithinApplicationTxFn(ctx, applicationID, fn)
	}
	a, err := m.Repos.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return application.ErrNotFound
		}
		return err
	}
	return fn(m.Repos, a)
}
