package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appDomain "sacco-loan-service/internal/domain/application"
	guarantorDomain "sacco-loan-service/internal/domain/guarantor"
	notifDomain "sacco-loan-service/internal/domain/notification"
	reviewDomain "sacco-loan-service/internal/domain/review"
	scheduleDomain "sacco-loan-service/internal/domain/schedule"
)

// openTestDB runs the full schema against in-memory sqlite. The domain
// models avoid MySQL-only column types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&appDomain.LoanType{},
		&appDomain.Application{},
		&guarantorDomain.Approval{},
		&reviewDomain.StageReview{},
		&scheduleDomain.Installment{},
		&scheduleDomain.Payment{},
		&notifDomain.Notification{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedLoanType(t *testing.T, db *gorm.DB) *appDomain.LoanType {
	t.Helper()
	lt := &appDomain.LoanType{
		Name:         "maendeleo",
		MaxAmount:    decimal.RequireFromString("50000000"),
		InterestRate: decimal.RequireFromString("10"),
		MaxPeriod:    36,
		IsActive:     true,
	}
	if err := db.Create(lt).Error; err != nil {
		t.Fatalf("seed loan type: %v", err)
	}
	return lt
}

func makeApp(applicationID, applicantID string, lt *appDomain.LoanType) *appDomain.Application {
	amount := decimal.RequireFromString("1000000")
	return &appDomain.Application{
		ApplicationID:       applicationID,
		ApplicantID:         applicantID,
		LoanTypeID:          lt.ID,
		Amount:              amount,
		Period:              6,
		Status:              appDomain.StatusPending,
		BorrowerDeclaration: true,
		FinalApprovedAmount: amount,
		StatusUpdatedAt:     time.Now().UTC(),
	}
}
