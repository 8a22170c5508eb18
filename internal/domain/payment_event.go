package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentEventStatus string

const (
	PaymentEventProcessed PaymentEventStatus = "processed"
	PaymentEventSkipped   PaymentEventStatus = "skipped"
)

// PaymentEvent records one webhook delivery from the payment processor. The
// unique EventID makes crediting idempotent under at-least-once delivery:
// a redelivered event hits the existing row and is not credited again.
type PaymentEvent struct {
	ID        string             `json:"id" gorm:"primaryKey"`
	EventID   string             `json:"event_id" gorm:"not null;uniqueIndex"`
	Type      string             `json:"type"`
	UserID    int64              `json:"user_id" gorm:"index"`
	Credits   int64              `json:"credits"`
	Status    PaymentEventStatus `json:"status" gorm:"type:varchar(16);not null"`
	RawBody   string             `json:"-"`
	CreatedAt time.Time          `json:"created_at" gorm:"autoCreateTime"`
}

func (PaymentEvent) TableName() string { return "payment_events" }

func (e *PaymentEvent) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
