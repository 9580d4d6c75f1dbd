package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "homebook/internal/errors"
	"homebook/internal/models"
)

// TransactionQuery holds the raw filter parameters of a listing request.
// Nil dates and empty strings mean the parameter was not supplied.
type TransactionQuery struct {
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
	TypeLabel string
	Category  string
}

// transactionFilter is the set of conditions that actually apply after the
// query has been checked against today's date. All conditions are ANDed.
type transactionFilter struct {
	Date     *time.Time
	Type     *models.TransactionType
	FromDate *time.Time
	ToDate   *time.Time
	Category string
}

// resolveTransactionFilter decides which parameters of q take effect.
//
// A single date combined with either range bound is a contradiction and is
// rejected. Otherwise parameters that cannot match anything sensible are
// dropped silently: a single date after today, an unknown type label, and a
// range that is inverted, empty, half-open or reaches past today.
func resolveTransactionFilter(q TransactionQuery, today time.Time) (transactionFilter, error) {
	var f transactionFilter

	if q.Date != nil && (q.StartDate != nil || q.EndDate != nil) {
		return f, apperrors.ErrFilterConflict
	}

	if q.Date != nil && !q.Date.After(today) {
		d := *q.Date
		f.Date = &d
	}

	if t, ok := models.ParseTransactionType(q.TypeLabel); ok {
		f.Type = &t
	}

	if q.StartDate != nil && q.EndDate != nil {
		start, end := *q.StartDate, *q.EndDate
		if start.Before(end) && !start.After(today) && !end.After(today) {
			f.FromDate = &start
			f.ToDate = &end
		}
	}

	f.Category = q.Category
	return f, nil
}

// applyTransactionFilters adds the resolved conditions to q. categoryID is
// the already-resolved id for f.Category, empty when no category applies.
func applyTransactionFilters(q *gorm.DB, f transactionFilter, categoryID string) *gorm.DB {
	if f.Date != nil {
		q = q.Where("date = ?", *f.Date)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	return q
}
