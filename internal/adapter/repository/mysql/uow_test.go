package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	appDomain "sacco-loan-service/internal/domain/application"
	guarantorDomain "sacco-loan-service/internal/domain/guarantor"
	notifDomain "sacco-loan-service/internal/domain/notification"
	"sacco-loan-service/internal/domain/uow"
	"sacco-loan-service/pkg/id"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	lt := seedLoanType(t, db)

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)

	appID := id.NewID32()
	gID := id.NewID32()
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		a := makeApp(appID, id.NewID32(), lt)
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		if a.ID == 0 {
			t.Fatal("application auto ID not set")
		}
		if err := r.Guarantors.CreateBatch(ctx, []guarantorDomain.Approval{
			{ApplicationID: a.ID, GuarantorID: gID},
		}); err != nil {
			return err
		}
		return r.Notifications.Create(ctx, &notifDomain.Notification{
			RecipientID: gID,
			Type:        notifDomain.TypeGuarantorRequest,
			RelatedID:   a.ID,
			RelatedType: "LoanApplication",
		})
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	a, err := appRepo.GetByApplicationID(ctx, appID)
	if err != nil {
		t.Fatalf("application not visible after commit: %v", err)
	}
	slots, err := NewGuarantorRepository(db).ListByApplication(ctx, a.ID)
	if err != nil || len(slots) != 1 {
		t.Fatalf("guarantor slot not visible after commit: %v (%d)", err, len(slots))
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	lt := seedLoanType(t, db)

	guow := NewGormUoW(db)
	appID := id.NewID32()
	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, makeApp(appID, id.NewID32(), lt)); err != nil {
			return err
		}
		return sentinel
	})

	_, err := NewApplicationRepository(db).GetByApplicationID(ctx, appID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected application gone after rollback, got %v", err)
	}
}

func TestGormUoW_WithinApplicationTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	lt := seedLoanType(t, db)

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)

	appID := id.NewID32()
	if err := appRepo.Create(ctx, makeApp(appID, id.NewID32(), lt)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := guow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.Application) error {
		if a == nil || a.ApplicationID != appID || a.LoanType.ID != lt.ID {
			t.Fatalf("unexpected application passed to fn: %+v", a)
		}
		a.Status = appDomain.StatusGuarantorApproved
		return r.Applications.Save(ctx, a)
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx err: %v", err)
	}

	got, err := appRepo.GetByApplicationID(ctx, appID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != appDomain.StatusGuarantorApproved {
		t.Fatalf("status = %s after commit", got.Status)
	}
}

func TestGormUoW_WithinApplicationTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	lt := seedLoanType(t, db)

	guow := NewGormUoW(db)
	appRepo := NewApplicationRepository(db)

	appID := id.NewID32()
	if err := appRepo.Create(ctx, makeApp(appID, id.NewID32(), lt)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sentinel := errors.New("boom")
	_ = guow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.Application) error {
		a.Status = appDomain.StatusRejected
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		return sentinel
	})

	got, err := appRepo.GetByApplicationID(ctx, appID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != appDomain.StatusPending {
		t.Fatalf("status = %s, want pending after rollback", got.Status)
	}
}

func TestGormUoW_WithinApplicationTx_NotFound(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinApplicationTx(context.Background(), "ffffffffffffffffffffffffffffffff",
		func(r uow.Repos, a *appDomain.Application) error { return nil })
	if !errors.Is(err, appDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
