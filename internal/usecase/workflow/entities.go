package workflow

import (
	"time"

	"github.com/shopspring/decimal"

	"sacco-loan-service/internal/domain/application"
)

type GuarantorResponseInput struct {
	ApplicationID string
	GuarantorID   string
	Approve       bool
	Declaration   bool
	Comments      string
}

type HRReviewInput struct {
	ApplicationID    string
	ReviewerID       string
	Role             application.Role
	MonthlySalary    decimal.Decimal
	EmployerDebts    decimal.Decimal
	FinancialDebts   decimal.Decimal
	DepartmentAdvice string
	Comments         string
}

type OfficerDecisionInput struct {
	ApplicationID  string
	OfficerID      string
	Role           application.Role
	Approve        bool
	AdjustedAmount *decimal.Decimal
	Comments       string
}

type CommitteeDecisionInput struct {
	ApplicationID string
	MemberID      string
	Role          application.Role
	Approve       bool
	FinalAmount   *decimal.Decimal
	Comments      string
}

type AccountantProcessingInput struct {
	ApplicationID   string
	AccountantID    string
	Role            application.Role
	PaymentMethod   string
	BankDetails     string
	ProcessingNotes string
}

type DisburseInput struct {
	ApplicationID string
	AccountantID  string
	Role          application.Role
}

type CompleteInput struct {
	ApplicationID string
	AccountantID  string
	Role          application.Role
}

type RecordPaymentInput struct {
	ApplicationID   string
	Amount          decimal.Decimal
	PaymentMethod   string
	ReferenceNumber string
}

// TransitionDTO reports where the application landed after an operation.
type TransitionDTO struct {
	ApplicationID   string             `json:"application_id"`
	Status          application.Status `json:"status"`
	StatusUpdatedAt time.Time          `json:"status_updated_at"`
}
