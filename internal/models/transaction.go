package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the stored code of an entry's direction.
type TransactionType int

const (
	TransactionTypeExpense TransactionType = 0
	TransactionTypeIncome  TransactionType = 1
)

// Labels as accepted on the wire.
const (
	LabelExpense = "Expense"
	LabelIncome  = "Income"
)

// ParseTransactionType maps a wire label to its stored code.
// The match is exact; anything else reports false.
func ParseTransactionType(label string) (TransactionType, bool) {
	switch label {
	case LabelExpense:
		return TransactionTypeExpense, true
	case LabelIncome:
		return TransactionTypeIncome, true
	}
	return 0, false
}

// String returns the wire label.
func (t TransactionType) String() string {
	switch t {
	case TransactionTypeExpense:
		return LabelExpense
	case TransactionTypeIncome:
		return LabelIncome
	}
	return fmt.Sprintf("TransactionType(%d)", int(t))
}

// MarshalJSON renders the wire label.
func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts either the wire label or the numeric code.
func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		parsed, ok := ParseTransactionType(label)
		if !ok {
			return fmt.Errorf("unknown transaction type %q", label)
		}
		*t = parsed
		return nil
	}
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	if code != int(TransactionTypeExpense) && code != int(TransactionTypeIncome) {
		return fmt.Errorf("unknown transaction type code %d", code)
	}
	*t = TransactionType(code)
	return nil
}

// Signed returns amount with the sign this type applies to a balance.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeIncome {
		return amount
	}
	return amount.Neg()
}

// Transaction is a realized income or expense entry. It affects the owning
// account's balance for as long as it exists.
type Transaction struct {
	Base
	AccountID  string          `gorm:"type:uuid;not null;index" json:"account_id"`
	Type       TransactionType `gorm:"not null" json:"type"`
	CategoryID string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Date       time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Comment    string          `gorm:"size:255" json:"comment"`

	Account  *Account  `gorm:"foreignKey:AccountID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// SignedAmount is the amount as it contributes to the account balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	return t.Type.Signed(t.Amount)
}
