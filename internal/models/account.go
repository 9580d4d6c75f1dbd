package models

import "github.com/shopspring/decimal"

// Account is a user's ledger. Balance is a running total kept in step with
// the account's transactions; it is written only through
// AccountServicer.ApplyDelta.
type Account struct {
	Base
	OwnerID       string          `gorm:"type:uuid;uniqueIndex;not null" json:"owner_id"`
	AccountNumber string          `gorm:"size:20;not null" json:"account_number"`
	Balance       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"`

	Transactions         []Transaction         `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	PlanningTransactions []PlanningTransaction `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
}
