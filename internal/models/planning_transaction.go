package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanningTransaction is a scheduled entry. It has the shape of a
// Transaction but never touches the account balance.
type PlanningTransaction struct {
	Base
	AccountID  string          `gorm:"column:account_plan_id;type:uuid;not null;index" json:"account_id"`
	Type       TransactionType `gorm:"column:type_plan;not null" json:"type"`
	CategoryID string          `gorm:"column:category_plan_id;type:uuid;not null;index" json:"category_id"`
	Date       time.Time       `gorm:"column:date_plan;type:date;not null;index" json:"date"`
	Amount     decimal.Decimal `gorm:"column:amount_plan;type:decimal(10,2);not null" json:"amount"`
	Comment    string          `gorm:"column:comment_plan;size:255" json:"comment"`

	Account  *Account  `gorm:"foreignKey:AccountID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
