package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Andrew-Karvelis/sparkd/internal/domain"
)

type PaymentEventRepository struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) *PaymentEventRepository {
	return &PaymentEventRepository{db: db}
}

// RecordOnce inserts the event unless a row with the same processor event id
// already exists. Returns true only for the first delivery; redeliveries of
// the same event must not be credited again.
func (r *PaymentEventRepository) RecordOnce(ctx context.Context, event *domain.PaymentEvent) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.PaymentEvent
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", event.EventID).
			First(&existing).Error
		if err == nil {
			created = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(event).Error; err != nil {
			if isUniqueConstraintError(err) {
				created = false
				return nil
			}
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (r *PaymentEventRepository) GetByEventID(ctx context.Context, eventID string) (*domain.PaymentEvent, error) {
	var event domain.PaymentEvent
	if tx := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&event); tx.Error != nil {
		return nil, tx.Error
	}
	return &event, nil
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}
