package application

import (
	"time"

	"github.com/shopspring/decimal"

	domain "sacco-loan-service/internal/domain/application"
	"sacco-loan-service/internal/domain/guarantor"
)

type SubmitInput struct {
	ApplicantID  string
	LoanTypeID   uint64
	Purpose      string
	Amount       decimal.Decimal
	Period       int
	GuarantorIDs []string

	PhoneNumber   string
	Department    string
	BankName      string
	AccountNumber string

	BorrowerDeclaration    bool
	SavingsValue           decimal.Decimal
	SharesValue            decimal.Decimal
	Collateral1Description string
	Collateral1Value       *decimal.Decimal
	Collateral2Description string
	Collateral2Value       *decimal.Decimal
}

type ApplicationDTO struct {
	ApplicationID       string          `json:"application_id"`
	ApplicantID         string          `json:"applicant_id"`
	LoanType            string          `json:"loan_type"`
	Purpose             string          `json:"purpose"`
	Amount              decimal.Decimal `json:"amount"`
	Period              int             `json:"period"`
	Status              string          `json:"status"`
	Progress            int             `json:"progress"`
	CurrentStep         string          `json:"current_step"`
	MonthlyRepayment    decimal.Decimal `json:"monthly_repayment"`
	TotalInterest       decimal.Decimal `json:"total_interest"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	FinalApprovedAmount decimal.Decimal `json:"final_approved_amount"`
	CreatedAt           time.Time       `json:"created_at"`
}

// GuarantorRequestDTO is one entry in a guarantor's work queue.
type GuarantorRequestDTO struct {
	ApplicationID string             `json:"application_id"`
	Status        guarantor.Decision `json:"status"`
	RespondedAt   *time.Time         `json:"responded_at,omitempty"`
}

type GuarantorRequestsDTO struct {
	Pending   []GuarantorRequestDTO `json:"pending"`
	Responded []GuarantorRequestDTO `json:"responded"`
}

func nullDecimalPtr(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func toDTO(a *domain.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:       a.ApplicationID,
		ApplicantID:         a.ApplicantID,
		LoanType:            a.LoanType.Name,
		Purpose:             a.Purpose,
		Amount:              a.Amount,
		Period:              a.Period,
		Status:              string(a.Status),
		Progress:            a.Progress(),
		CurrentStep:         a.CurrentStep(),
		MonthlyRepayment:    a.MonthlyRepayment,
		TotalInterest:       a.TotalInterest,
		TotalAmount:         a.TotalAmount,
		FinalApprovedAmount: a.FinalApprovedAmount,
		CreatedAt:           a.CreatedAt,
	}
}
