package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	guarantorDomain "sacco-loan-service/internal/domain/guarantor"
	"sacco-loan-service/pkg/id"
)

func TestGuarantorCreateBatchAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuarantorRepository(db)
	ctx := context.Background()

	g1, g2 := id.NewID32(), id.NewID32()
	err := repo.CreateBatch(ctx, []guarantorDomain.Approval{
		{ApplicationID: 1, GuarantorID: g1, Decision: guarantorDomain.DecisionPending},
		{ApplicationID: 1, GuarantorID: g2, Decision: guarantorDomain.DecisionPending},
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	out, err := repo.ListByApplication(ctx, 1)
	if err != nil {
		t.Fatalf("ListByApplication: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d slots, want 2", len(out))
	}
	for _, s := range out {
		if s.Responded() {
			t.Errorf("fresh slot should be pending: %+v", s)
		}
	}
}

func TestGuarantorCreateBatchEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuarantorRepository(db)

	if err := repo.CreateBatch(context.Background(), nil); err != nil {
		t.Fatalf("CreateBatch(nil): %v", err)
	}
}

func TestGuarantorPairUnique(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuarantorRepository(db)
	ctx := context.Background()

	g := id.NewID32()
	if err := repo.CreateBatch(ctx, []guarantorDomain.Approval{
		{ApplicationID: 1, GuarantorID: g},
	}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	// same (application, guarantor) pair again
	if err := repo.CreateBatch(ctx, []guarantorDomain.Approval{
		{ApplicationID: 1, GuarantorID: g},
	}); err == nil {
		t.Fatal("expected unique constraint violation on duplicate pair")
	}
	// same guarantor on a different application is fine
	if err := repo.CreateBatch(ctx, []guarantorDomain.Approval{
		{ApplicationID: 2, GuarantorID: g},
	}); err != nil {
		t.Fatalf("same guarantor on another application: %v", err)
	}
}

func TestGuarantorGetForGuarantorAndSave(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuarantorRepository(db)
	ctx := context.Background()

	g := id.NewID32()
	if err := repo.CreateBatch(ctx, []guarantorDomain.Approval{
		{ApplicationID: 9, GuarantorID: g, Decision: guarantorDomain.DecisionPending},
	}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	slot, err := repo.GetForGuarantor(ctx, 9, g)
	if err != nil {
		t.Fatalf("GetForGuarantor: %v", err)
	}

	now := time.Now().UTC()
	slot.Decision = guarantorDomain.DecisionApproved
	slot.Declaration = true
	slot.RespondedAt = &now
	if err := repo.Save(ctx, slot); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetForGuarantor(ctx, 9, g)
	if err != nil {
		t.Fatalf("GetForGuarantor after save: %v", err)
	}
	if got.Decision != guarantorDomain.DecisionApproved || got.RespondedAt == nil {
		t.Errorf("response not persisted: %+v", got)
	}

	if _, err := repo.GetForGuarantor(ctx, 9, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unknown guarantor, got %v", err)
	}
}
