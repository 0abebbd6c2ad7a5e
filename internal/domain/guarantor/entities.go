package guarantor

import "time"

// Decision is an explicit tri-state. A row that exists with
// DecisionPending means the guarantor was nominated but has not responded.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Approval is one guarantor's response slot for one application, created at
// submission time for every nominated guarantor. Unique per
// (application, guarantor); cascades away with the application.
type Approval struct {
	ID            uint64     `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID uint64     `gorm:"not null;uniqueIndex:ux_guarantor_app_pair" json:"-"`
	GuarantorID   string     `gorm:"size:32;not null;uniqueIndex:ux_guarantor_app_pair;index" json:"guarantor_id"`
	Decision      Decision   `gorm:"size:10;default:'pending'" json:"decision"`
	Declaration   bool       `gorm:"default:false" json:"declaration"`
	Comments      string     `gorm:"type:text" json:"comments"`
	RespondedAt   *time.Time `json:"responded_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Approval) TableName() string { return "guarantor_approvals" }

// Responded reports whether the guarantor has answered either way.
func (a Approval) Responded() bool { return a.Decision != DecisionPending }
