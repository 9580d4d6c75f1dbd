package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"homebook/internal/dates"
	apperrors "homebook/internal/errors"
	"homebook/internal/models"
	"homebook/internal/money"
)

// maxCommentLength bounds free-text comments on entries.
const maxCommentLength = 255

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	accountService  AccountServicer
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		accountService:  accountService,
		categoryService: categoryService,
	}
}

// CreateTransaction records a new entry on the owner's account and moves the
// balance by its signed amount in the same database transaction. The date
// defaults to today and may not lie in the future.
func (s *transactionService) CreateTransaction(ctx context.Context, ownerID string, input TransactionInput) (*models.Transaction, *models.Account, error) {
	if input.Date.IsZero() {
		input.Date = dates.Today()
	}
	if err := validateEntryInput(input); err != nil {
		return nil, nil, err
	}
	if dates.IsFuture(input.Date) {
		return nil, nil, apperrors.ErrFutureDate
	}

	category, err := s.categoryService.ResolveCategory(ctx, input.Category)
	if err != nil {
		return nil, nil, err
	}

	transaction := &models.Transaction{
		Type:       input.Type,
		CategoryID: category.ID,
		Date:       dates.Day(input.Date),
		Amount:     input.Amount,
		Comment:    strings.TrimSpace(input.Comment),
	}

	var account *models.Account
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned, err := s.accountService.LockAccountByOwner(tx, ownerID)
		if err != nil {
			return err
		}

		account, err = s.accountService.ApplyDelta(tx, owned.ID, transaction.SignedAmount())
		if err != nil {
			return err
		}

		transaction.AccountID = account.ID
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	transaction.Category = category
	return transaction, account, nil
}

// GetTransactionByID retrieves a transaction on the owner's account.
func (s *transactionService) GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*models.Transaction, error) {
	account, err := s.accountService.GetAccountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var transaction models.Transaction
	if err := s.db.WithContext(ctx).Preload("Category").
		Where("id = ? AND account_id = ?", transactionID, account.ID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction removes an entry and reverses its effect on the balance.
// The account row is locked before the entry is read, so two concurrent
// deletes of the same entry cannot both reverse it.
func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) (*models.Account, error) {
	var account *models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned, err := s.accountService.LockAccountByOwner(tx, ownerID)
		if err != nil {
			return err
		}

		var transaction models.Transaction
		if err := tx.Where("id = ? AND account_id = ?", transactionID, owned.ID).
			First(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		account, err = s.accountService.ApplyDelta(tx, owned.ID, transaction.SignedAmount().Neg())
		if err != nil {
			return err
		}

		if err := tx.Delete(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetLatestTransactions returns the owner's most recent entries, newest first.
func (s *transactionService) GetLatestTransactions(ctx context.Context, ownerID string, limit int) ([]models.Transaction, error) {
	account, err := s.accountService.GetAccountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 10
	}

	var transactions []models.Transaction
	if err := s.db.WithContext(ctx).Preload("Category").
		Where("account_id = ?", account.ID).
		Order("date DESC").Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// FilterTransactions lists the owner's entries matching every applicable
// filter in query, newest first.
func (s *transactionService) FilterTransactions(ctx context.Context, ownerID string, query TransactionQuery) ([]models.Transaction, error) {
	filter, err := resolveTransactionFilter(query, dates.Today())
	if err != nil {
		return nil, err
	}

	var categoryID string
	if filter.Category != "" {
		category, err := s.categoryService.ResolveCategory(ctx, filter.Category)
		if err != nil {
			return nil, err
		}
		categoryID = category.ID
	}

	account, err := s.accountService.GetAccountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	base := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("account_id = ?", account.ID)
	base = applyTransactionFilters(base, filter, categoryID)

	var transactions []models.Transaction
	if err := base.Preload("Category").
		Order("date DESC").Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetStatistics reports income, expense and per-category totals for the
// inclusive period. An inverted period yields an empty report.
func (s *transactionService) GetStatistics(ctx context.Context, ownerID string, period DateRange) (*Statistics, error) {
	account, err := s.accountService.GetAccountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var rows []statRow
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("transactions.type AS type, transactions.amount AS amount, categories.name AS category").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.account_id = ?", account.ID).
		Where("transactions.date >= ? AND transactions.date <= ?", dates.Day(period.Start), dates.Day(period.End)).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := aggregate(rows)
	return &stats, nil
}

// validateEntryInput checks the fields shared by transactions and planned
// transactions.
func validateEntryInput(input TransactionInput) error {
	if input.Type != models.TransactionTypeExpense && input.Type != models.TransactionTypeIncome {
		return apperrors.ErrInvalidTransactionType
	}
	if err := money.Validate(input.Amount); err != nil {
		return apperrors.ErrInvalidAmount
	}
	if len([]rune(strings.TrimSpace(input.Comment))) > maxCommentLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "comment must be at most 255 characters")
	}
	if strings.TrimSpace(input.Category) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	return nil
}
