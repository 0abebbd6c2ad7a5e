package application

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending             Status = "pending"
	StatusGuarantorApproved   Status = "guarantor_approved"
	StatusHRReviewed          Status = "hr_reviewed"
	StatusLoanOfficerApproved Status = "loan_officer_approved"
	StatusCommitteeApproved   Status = "committee_approved"
	StatusPaymentProcessing   Status = "payment_processing"
	StatusDisbursed           Status = "disbursed"
	StatusRejected            Status = "rejected"
	StatusCompleted           Status = "completed"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool { return s == StatusRejected || s == StatusCompleted }

type Role string

const (
	RoleMember          Role = "member"
	RoleHROfficer       Role = "hr_officer"
	RoleLoanOfficer     Role = "loan_officer"
	RoleCommitteeMember Role = "committee_member"
	RoleAccountant      Role = "accountant"
	RoleAdmin           Role = "admin"
)

// LoanType is the product catalog entry an application is made against.
// Wanawake (women's fund) loans carry a flat 1%/month interest instead of
// the pro-rated annual rate.
type LoanType struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	Name               string          `gorm:"size:50;uniqueIndex" json:"name"`
	MaxAmount          decimal.Decimal `gorm:"type:decimal(12,2)" json:"max_amount"`
	InterestRate       decimal.Decimal `gorm:"type:decimal(5,2)" json:"interest_rate"`
	MaxPeriod          int             `gorm:"" json:"max_period"`
	ProcessingFee      decimal.Decimal `gorm:"type:decimal(5,2)" json:"processing_fee"`
	CollateralRequired string          `gorm:"type:text" json:"collateral_required"`
	IsActive           bool            `gorm:"default:true" json:"is_active"`
}

func (LoanType) TableName() string { return "loan_types" }

const TypeWanawake = "wanawake"

// FlatMonthlyRate reports whether this product uses the flat 1%/month rule.
func (t LoanType) FlatMonthlyRate() bool { return t.Name == TypeWanawake }

type Application struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID string `gorm:"size:32;uniqueIndex:ux_applications_app_id" json:"application_id"`
	ApplicantID   string `gorm:"size:32;index:idx_applications_applicant" json:"applicant_id"`
	LoanTypeID    uint64 `gorm:"not null;index" json:"-"`
	LoanType      LoanType
	Purpose       string          `gorm:"size:50" json:"purpose"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Period        int             `gorm:"not null" json:"period"`
	Status        Status          `gorm:"size:30;default:'pending';index" json:"status"`

	PhoneNumber   string `gorm:"size:15" json:"phone_number"`
	Department    string `gorm:"size:100" json:"department"`
	BankName      string `gorm:"size:100" json:"bank_name"`
	AccountNumber string `gorm:"size:50" json:"account_number"`

	BorrowerDeclaration    bool                `gorm:"default:false" json:"borrower_declaration"`
	SavingsValue           decimal.Decimal     `gorm:"type:decimal(12,2)" json:"savings_value"`
	SharesValue            decimal.Decimal     `gorm:"type:decimal(12,2)" json:"shares_value"`
	Collateral1Description string              `gorm:"size:200" json:"collateral1_description"`
	Collateral1Value       decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"collateral1_value"`
	Collateral2Description string              `gorm:"size:200" json:"collateral2_description"`
	Collateral2Value       decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"collateral2_value"`

	// Derived fields, always kept consistent with
	// (final_approved_amount, loan_type.interest_rate, period).
	MonthlyRepayment decimal.Decimal `gorm:"type:decimal(12,2)" json:"monthly_repayment"`
	TotalInterest    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_interest"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`

	// Defaults to the requested amount; only an officer/committee decision
	// with an explicit adjusted value overwrites it.
	FinalApprovedAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"final_approved_amount"`

	GuarantorApprovalDate   *time.Time `json:"guarantor_approval_date"`
	HRReviewDate            *time.Time `json:"hr_review_date"`
	LoanOfficerApprovalDate *time.Time `json:"loan_officer_approval_date"`
	CommitteeApprovalDate   *time.Time `json:"committee_approval_date"`
	PaymentProcessingDate   *time.Time `json:"payment_processing_date"`
	DisbursementDate        *time.Time `json:"disbursement_date"`

	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "loan_applications" }

// workflowSteps is the forward path; rejected/completed are terminal branches.
var workflowSteps = []Status{
	StatusPending,
	StatusGuarantorApproved,
	StatusHRReviewed,
	StatusLoanOfficerApproved,
	StatusCommitteeApproved,
	StatusPaymentProcessing,
	StatusDisbursed,
}

// Progress returns the workflow completion percentage for tracker views.
func (a *Application) Progress() int {
	for i, s := range workflowSteps {
		if a.Status == s {
			return i * 100 / (len(workflowSteps) - 1)
		}
	}
	if a.Status == StatusCompleted {
		return 100
	}
	return 0
}

var stepDescriptions = map[Status]string{
	StatusPending:             "Awaiting Guarantor Approval",
	StatusGuarantorApproved:   "Awaiting HR Review",
	StatusHRReviewed:          "Awaiting Loan Officer Review",
	StatusLoanOfficerApproved: "Awaiting Committee Review",
	StatusCommitteeApproved:   "Awaiting Payment Processing",
	StatusPaymentProcessing:   "Payment Being Processed",
	StatusDisbursed:           "Loan Disbursed",
	StatusRejected:            "Application Rejected",
	StatusCompleted:           "Loan Completed",
}

func (a *Application) CurrentStep() string {
	if d, ok := stepDescriptions[a.Status]; ok {
		return d
	}
	return "Unknown Status"
}

// StampTransition records the date of a successful stage transition.
// Stage dates are write-once; a stamp that is already set is left alone.
func (a *Application) StampTransition(next Status, at time.Time) {
	var field **time.Time
	switch next {
	case StatusGuarantorApproved:
		field = &a.GuarantorApprovalDate
	case StatusHRReviewed:
		field = &a.HRReviewDate
	case StatusLoanOfficerApproved:
		field = &a.LoanOfficerApprovalDate
	case StatusCommitteeApproved:
		field = &a.CommitteeApprovalDate
	case StatusPaymentProcessing:
		field = &a.PaymentProcessingDate
	case StatusDisbursed:
		field = &a.DisbursementDate
	default:
		return
	}
	if *field == nil {
		t := at
		*field = &t
	}
}
