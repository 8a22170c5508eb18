package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CreditTransactionAdd   = "ADD"
	CreditTransactionSpend = "SPEND"
)

// CreditTransaction is an audit record of a balance mutation. The authoritative
// balance is the credits column on the user row; these rows only explain it.
type CreditTransaction struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	Amount    int64     `json:"amount" gorm:"not null"`
	Type      string    `json:"type" gorm:"type:varchar(16);not null;index;check:type IN ('ADD','SPEND')"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (CreditTransaction) TableName() string { return "credit_transactions" }

func (t *CreditTransaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
