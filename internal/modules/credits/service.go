package credits

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Andrew-Karvelis/sparkd/internal/domain"
)

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// Service owns the credit balance on the user row. Every mutation happens
// under a row lock and writes an audit row in the same transaction, so the
// balance and the ledger cannot drift apart.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Select("id", "credits").First(&user, userID).Error; err != nil {
		return 0, err
	}
	return user.Credits, nil
}

// Credit adds purchased or granted credits and records an ADD ledger entry.
func (s *Service) Credit(ctx context.Context, userID int64, amount int64, reference string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var balance int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUserForUpdate(tx, userID)
		if err != nil {
			return err
		}

		balance = user.Credits + amount
		if err := tx.Model(&domain.User{}).Where("id = ?", userID).Update("credits", balance).Error; err != nil {
			return err
		}

		txn := domain.CreditTransaction{
			UserID:    userID,
			Amount:    amount,
			Type:      domain.CreditTransactionAdd,
			Reference: reference,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Deduct removes credits and records a SPEND ledger entry. Fails with
// ErrInsufficientCredits when the locked balance is short.
func (s *Service) Deduct(ctx context.Context, userID int64, amount int64, reference string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var balance int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUserForUpdate(tx, userID)
		if err != nil {
			return err
		}

		if user.Credits < amount {
			return ErrInsufficientCredits
		}

		balance = user.Credits - amount
		if err := tx.Model(&domain.User{}).Where("id = ?", userID).Update("credits", balance).Error; err != nil {
			return err
		}

		txn := domain.CreditTransaction{
			UserID:    userID,
			Amount:    amount,
			Type:      domain.CreditTransactionSpend,
			Reference: reference,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// SpendOnImage is the per-image commit: one transaction that spends a single
// credit and persists the gallery row. Either both land or neither does, so a
// stored image always has a matching charge.
func (s *Service) SpendOnImage(ctx context.Context, userID int64, theme, url string) (*domain.GalleryImage, error) {
	var image domain.GalleryImage

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUserForUpdate(tx, userID)
		if err != nil {
			return err
		}

		if user.Credits < 1 {
			return ErrInsufficientCredits
		}

		if err := tx.Model(&domain.User{}).Where("id = ?", userID).Update("credits", user.Credits-1).Error; err != nil {
			return err
		}

		txn := domain.CreditTransaction{
			UserID:    userID,
			Amount:    1,
			Type:      domain.CreditTransactionSpend,
			Reference: theme,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		image = domain.GalleryImage{
			UserID: userID,
			Theme:  theme,
			URL:    url,
		}
		return tx.Create(&image).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *Service) ListTransactions(ctx context.Context, userID int64) ([]domain.CreditTransaction, error) {
	var txns []domain.CreditTransaction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func lockUserForUpdate(tx *gorm.DB, userID int64) (*domain.User, error) {
	var user domain.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
