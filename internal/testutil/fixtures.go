package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"homebook/internal/dates"
	"homebook/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Money parses a decimal literal, failing the test on malformed input.
func Money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

// Today returns the ledger's current calendar day.
func Today() time.Time {
	return dates.Today()
}

// DaysFromToday returns the calendar day n days away from today.
func DaysFromToday(n int) time.Time {
	return dates.Today().AddDate(0, 0, n)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a zero-balance account for the user.
func CreateTestAccount(t *testing.T, db *gorm.DB, ownerID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, ownerID, decimal.Zero)
}

// CreateTestAccountWithBalance creates an account with the given opening balance.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, ownerID string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		OwnerID:       ownerID,
		AccountNumber: fmt.Sprintf("%010d", nextID()),
		Balance:       balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestUserWithAccount creates a user and its account in one call.
func CreateTestUserWithAccount(t *testing.T, db *gorm.DB, balance decimal.Decimal) (*models.User, *models.Account) {
	t.Helper()
	user := CreateTestUser(t, db)
	return user, CreateTestAccountWithBalance(t, db, user.ID, balance)
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.TransactionType) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()), categoryType)
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string, categoryType models.TransactionType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: name,
		Type: categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction inserts a transaction row directly, bypassing the
// balance rule. Use it to seed history for read-side tests.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID, categoryID string, txType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       txType,
		Amount:     Money(t, amount),
		Date:       dates.Day(date),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestPlannedTransaction inserts a planned transaction row directly.
func CreateTestPlannedTransaction(t *testing.T, db *gorm.DB, accountID, categoryID string, txType models.TransactionType, amount string, date time.Time) *models.PlanningTransaction {
	t.Helper()

	plan := &models.PlanningTransaction{
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       txType,
		Amount:     Money(t, amount),
		Date:       dates.Day(date),
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test planned transaction: %v", err)
	}
	return plan
}

// ReloadAccount reads the account's persisted state.
func ReloadAccount(t *testing.T, db *gorm.DB, accountID string) *models.Account {
	t.Helper()

	var account models.Account
	if err := db.First(&account, "id = ?", accountID).Error; err != nil {
		t.Fatalf("failed to reload account: %v", err)
	}
	return &account
}

// AssertBalance fails the test unless the persisted balance equals want.
func AssertBalance(t *testing.T, db *gorm.DB, accountID, want string) {
	t.Helper()

	got := ReloadAccount(t, db, accountID).Balance
	if !got.Equal(Money(t, want)) {
		t.Errorf("expected balance %s, got %s", want, got.StringFixed(2))
	}
}
