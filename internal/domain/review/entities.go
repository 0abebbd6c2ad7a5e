package review

import (
	"time"

	"github.com/shopspring/decimal"
)

type Stage string

const (
	StageHR          Stage = "hr"
	StageLoanOfficer Stage = "loan_officer"
	StageCommittee   Stage = "committee"
	StageAccountant  Stage = "accountant"
)

type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// StageReview is the per-stage decision record. A pending row is created the
// moment the application enters a stage and completed when the responsible
// role submits; at most one row exists per (application, stage).
//
// Column usage varies by stage: HR fills the salary/debt facts, loan officer
// and committee fill decision + adjusted amount, accountant fills the payment
// columns and never rejects.
type StageReview struct {
	ID            uint64   `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID uint64   `gorm:"not null;uniqueIndex:ux_reviews_app_stage" json:"-"`
	Stage         Stage    `gorm:"size:20;not null;uniqueIndex:ux_reviews_app_stage" json:"stage"`
	ReviewerID    *string  `gorm:"size:32" json:"reviewer_id"`
	Decision      Decision `gorm:"size:10;default:'pending'" json:"decision"`

	// Officer/committee
	AdjustedAmount decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"adjusted_amount"`

	// HR facts
	MonthlySalary    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"monthly_salary"`
	EmployerDebts    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"employer_debts"`
	FinancialDebts   decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"financial_debts"`
	DepartmentAdvice string              `gorm:"type:text" json:"department_advice"`

	// Accountant
	PaymentMethod   string `gorm:"size:50" json:"payment_method"`
	BankDetails     string `gorm:"type:text" json:"bank_details"`
	ProcessingNotes string `gorm:"type:text" json:"processing_notes"`

	Comments   string     `gorm:"type:text" json:"comments"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StageReview) TableName() string { return "stage_reviews" }

// Pending reports whether the stage is still waiting on its reviewer.
func (r StageReview) Pending() bool { return r.Decision == DecisionPending }
