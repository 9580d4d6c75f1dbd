package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "homebook/internal/errors"
	"homebook/internal/models"
)

// accountNumberDigits is the length of generated account numbers.
const accountNumberDigits = 10

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount opens a zero-balance account for ownerID using tx, so that
// it commits or rolls back together with the owning user.
func (s *accountService) CreateAccount(tx *gorm.DB, ownerID string) (*models.Account, error) {
	if ownerID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account owner is required")
	}

	number, err := newAccountNumber()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account := &models.Account{
		OwnerID:       ownerID,
		AccountNumber: number,
		Balance:       decimal.Zero,
	}
	if err := tx.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetAccountByOwner retrieves the account owned by a user.
func (s *accountService) GetAccountByOwner(ctx context.Context, ownerID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// LockAccountByOwner loads the owner's account inside tx and holds a row
// lock on it until tx ends.
func (s *accountService) LockAccountByOwner(tx *gorm.DB, ownerID string) (*models.Account, error) {
	var account models.Account
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ?", ownerID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// ApplyDelta adds a signed delta to the account balance. The row is locked
// for the rest of tx, so concurrent deltas on one account are applied one
// after another instead of overwriting each other.
func (s *accountService) ApplyDelta(tx *gorm.DB, accountID string, delta decimal.Decimal) (*models.Account, error) {
	var account models.Account
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", accountID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account.Balance = account.Balance.Add(delta)
	if err := tx.Model(&account).Update("balance", account.Balance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

func newAccountNumber() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return fmt.Sprintf("%0*d", accountNumberDigits, n), nil
}
