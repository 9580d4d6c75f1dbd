package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"homebook/internal/dates"
	apperrors "homebook/internal/errors"
	"homebook/internal/models"
	"homebook/internal/pagination"
)

// plannedTransactionService handles scheduled entries. Nothing here touches
// an account balance.
type plannedTransactionService struct {
	db              *gorm.DB
	accountService  AccountServicer
	categoryService CategoryServicer
}

// NewPlannedTransactionService creates a new PlannedTransactionServicer.
func NewPlannedTransactionService(db *gorm.DB, accountService AccountServicer, categoryService CategoryServicer) PlannedTransactionServicer {
	return &plannedTransactionService{
		db:              db,
		accountService:  accountService,
		categoryService: categoryService,
	}
}

// CreatePlannedTransaction schedules an entry on the owner's account. The
// date defaults to today and may not lie in the past.
func (s *plannedTransactionService) CreatePlannedTransaction(ctx context.Context, ownerID string, input TransactionInput) (*models.PlanningTransaction, error) {
	if input.Date.IsZero() {
		input.Date = dates.Today()
	}
	if err := validateEntryInput(input); err != nil {
		return nil, err
	}
	if dates.IsPast(input.Date) {
		return nil, apperrors.ErrPastDate
	}

	category, err := s.categoryService.ResolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}
	account, err := s.accountService.GetAccountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	plan := &models.PlanningTransaction{
		AccountID:  account.ID,
		Type:       input.Type,
		CategoryID: category.ID,
		Date:       dates.Day(input.Date),
		Amount:     input.Amount,
		Comment:    strings.TrimSpace(input.Comment),
	}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	plan.Category = category
	return plan, nil
}

// DeletePlannedTransaction removes a scheduled entry owned by the caller.
func (s *plannedTransactionService) DeletePlannedTransaction(ctx context.Context, ownerID, planID string) error {
	account, err := s.accountService.GetAccountByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND account_plan_id = ?", planID, account.ID).
		Delete(&models.PlanningTransaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPlannedTransactionNotFound
	}
	return nil
}

// GetPlannedTransactions returns a page of the owner's scheduled entries,
// soonest first.
func (s *plannedTransactionService) GetPlannedTransactions(ctx context.Context, ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.PlanningTransaction], error) {
	account, err := s.accountService.GetAccountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	page = page.Normalize()

	base := s.db.WithContext(ctx).Model(&models.PlanningTransaction{}).Where("account_plan_id = ?", account.ID).
		Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var plans []models.PlanningTransaction
	if err := base.Scopes(page.Scope()).
		Preload("Category").
		Order("date_plan ASC").Order("created_at ASC").
		Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(plans, page, totalItems)
	return &result, nil
}

// GetPlannedStatistics reports the income and expense totals of the owner's
// scheduled entries in the inclusive period.
func (s *plannedTransactionService) GetPlannedStatistics(ctx context.Context, ownerID string, period DateRange) (*Totals, error) {
	account, err := s.accountService.GetAccountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var rows []statRow
	if err := s.db.WithContext(ctx).Model(&models.PlanningTransaction{}).
		Select("type_plan AS type, amount_plan AS amount").
		Where("account_plan_id = ?", account.ID).
		Where("date_plan >= ? AND date_plan <= ?", dates.Day(period.Start), dates.Day(period.End)).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := sumTotals(rows)
	return &totals, nil
}
