package notification

import (
	"context"
	"time"
)

type Type string

const (
	TypeGuarantorRequest  Type = "guarantor_request"
	TypeGuarantorResponse Type = "guarantor_response"
	TypeStatusChange      Type = "loan_status_change"
	TypeRejected          Type = "loan_rejected"
)

type Notification struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	RecipientID   string    `gorm:"size:32;not null;index" json:"recipient_id"`
	Type          Type      `gorm:"size:50;not null" json:"type"`
	Title         string    `gorm:"size:200" json:"title"`
	Message       string    `gorm:"type:text" json:"message"`
	RelatedID     uint64    `json:"related_id"`
	RelatedType   string    `gorm:"size:50" json:"related_type"`
	IsRead        bool      `gorm:"default:false" json:"is_read"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// Notifier is the fire-and-forget sink the workflow fans out to. The core
// only depends on this interface; delivery mechanics live in adapters.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]Notification, error)
}
