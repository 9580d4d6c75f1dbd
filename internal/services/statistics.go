package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"homebook/internal/models"
)

// Totals are the overall income and expense sums of a period. A nil total
// means the period has no entries of that type, which is reported
// differently from a zero sum.
type Totals struct {
	Income  *decimal.Decimal
	Expense *decimal.Decimal
}

// CategoryTotal is the sum of all entries of one category, income and
// expense alike.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// Statistics is the full report for a period. Categories are ordered by name.
type Statistics struct {
	Totals
	Categories []CategoryTotal
}

// statRow is one entry as read for aggregation.
type statRow struct {
	Type     models.TransactionType
	Amount   decimal.Decimal
	Category string
}

// aggregate folds rows into a report.
func aggregate(rows []statRow) Statistics {
	stats := Statistics{Totals: sumTotals(rows), Categories: []CategoryTotal{}}

	byName := make(map[string]decimal.Decimal)
	for _, r := range rows {
		byName[r.Category] = byName[r.Category].Add(r.Amount)
	}
	for name, total := range byName {
		stats.Categories = append(stats.Categories, CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		return stats.Categories[i].Name < stats.Categories[j].Name
	})
	return stats
}

func sumTotals(rows []statRow) Totals {
	var t Totals
	for _, r := range rows {
		switch r.Type {
		case models.TransactionTypeIncome:
			t.Income = addTo(t.Income, r.Amount)
		case models.TransactionTypeExpense:
			t.Expense = addTo(t.Expense, r.Amount)
		}
	}
	return t
}

func addTo(sum *decimal.Decimal, amount decimal.Decimal) *decimal.Decimal {
	if sum == nil {
		v := amount
		return &v
	}
	v := sum.Add(amount)
	return &v
}
