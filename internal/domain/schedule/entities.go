package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one dated repayment obligation. Numbers form a dense
// 1..period sequence and the amounts sum exactly to the application's total;
// the rounding remainder sits in the last installment.
type Installment struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID uint64          `gorm:"not null;uniqueIndex:ux_installments_app_number" json:"-"`
	Number        int             `gorm:"not null;uniqueIndex:ux_installments_app_number" json:"installment_number"`
	DueDate       time.Time       `gorm:"type:date;not null" json:"due_date"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	IsPaid        bool            `gorm:"default:false" json:"is_paid"`
	PaidAt        *time.Time      `json:"paid_at"`
}

func (Installment) TableName() string { return "repayment_schedule" }

// Payment is one ledger entry against a disbursed loan. Append-only.
type Payment struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   uint64          `gorm:"not null;index" json:"-"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	PaymentMethod   string          `gorm:"size:50;default:'Bank Transfer'" json:"payment_method"`
	ReferenceNumber string          `gorm:"size:100" json:"reference_number"`
	PaidAt          time.Time       `gorm:"autoCreateTime" json:"paid_at"`
}

func (Payment) TableName() string { return "loan_payments" }
