package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "homebook/internal/errors"
	"homebook/internal/models"
)

func TestResolveTransactionFilter(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		d := today.AddDate(0, 0, offset)
		return &d
	}

	t.Run("empty_query_applies_nothing", func(t *testing.T) {
		f, err := resolveTransactionFilter(TransactionQuery{}, today)
		require.NoError(t, err)
		assert.Equal(t, transactionFilter{}, f)
	})

	t.Run("date_with_start_conflicts", func(t *testing.T) {
		_, err := resolveTransactionFilter(TransactionQuery{Date: day(-1), StartDate: day(-3)}, today)
		assert.ErrorIs(t, err, apperrors.ErrFilterConflict)
	})

	t.Run("date_with_end_conflicts", func(t *testing.T) {
		_, err := resolveTransactionFilter(TransactionQuery{Date: day(-1), EndDate: day(-3)}, today)
		assert.ErrorIs(t, err, apperrors.ErrFilterConflict)
	})

	t.Run("future_date_conflicts_with_range", func(t *testing.T) {
		_, err := resolveTransactionFilter(TransactionQuery{Date: day(4), StartDate: day(-3), EndDate: day(-1)}, today)
		assert.ErrorIs(t, err, apperrors.ErrFilterConflict)
	})

	t.Run("today_date_applies", func(t *testing.T) {
		f, err := resolveTransactionFilter(TransactionQuery{Date: day(0)}, today)
		require.NoError(t, err)
		require.NotNil(t, f.Date)
		assert.True(t, f.Date.Equal(today))
	})

	t.Run("future_date_ignored", func(t *testing.T) {
		f, err := resolveTransactionFilter(TransactionQuery{Date: day(1)}, today)
		require.NoError(t, err)
		assert.Nil(t, f.Date)
	})

	t.Run("type_labels", func(t *testing.T) {
		tests := []struct {
			label string
			want  *models.TransactionType
		}{
			{"Expense", ptrType(models.TransactionTypeExpense)},
			{"Income", ptrType(models.TransactionTypeIncome)},
			{"income", nil},
			{"Transfer", nil},
			{"", nil},
		}
		for _, tt := range tests {
			f, err := resolveTransactionFilter(TransactionQuery{TypeLabel: tt.label}, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Type, "label %q", tt.label)
		}
	})

	t.Run("ranges", func(t *testing.T) {
		tests := []struct {
			name    string
			start   *time.Time
			end     *time.Time
			applies bool
		}{
			{"valid", day(-10), day(-2), true},
			{"ends_today", day(-10), day(0), true},
			{"equal_bounds", day(-2), day(-2), false},
			{"inverted", day(-2), day(-10), false},
			{"end_in_future", day(-10), day(1), false},
			{"start_in_future", day(1), day(5), false},
			{"start_only", day(-10), nil, false},
			{"end_only", nil, day(-2), false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f, err := resolveTransactionFilter(TransactionQuery{StartDate: tt.start, EndDate: tt.end}, today)
				require.NoError(t, err)
				if tt.applies {
					require.NotNil(t, f.FromDate)
					require.NotNil(t, f.ToDate)
					assert.True(t, f.FromDate.Equal(*tt.start))
					assert.True(t, f.ToDate.Equal(*tt.end))
				} else {
					assert.Nil(t, f.FromDate)
					assert.Nil(t, f.ToDate)
				}
			})
		}
	})

	t.Run("filters_combine", func(t *testing.T) {
		f, err := resolveTransactionFilter(TransactionQuery{
			StartDate: day(-10),
			EndDate:   day(-1),
			TypeLabel: "Income",
			Category:  "Salary",
		}, today)
		require.NoError(t, err)
		assert.NotNil(t, f.FromDate)
		assert.NotNil(t, f.ToDate)
		assert.Equal(t, ptrType(models.TransactionTypeIncome), f.Type)
		assert.Equal(t, "Salary", f.Category)
	})
}

func ptrType(t models.TransactionType) *models.TransactionType {
	return &t
}
