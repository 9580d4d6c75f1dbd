package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"homebook/internal/models"
	"homebook/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(ctx context.Context, username, password string) (*models.User, *models.Account, error)
	AttemptLogin(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AccountServicer defines the contract for account-related business logic.
// ApplyDelta is the only operation that writes an account balance.
type AccountServicer interface {
	CreateAccount(tx *gorm.DB, ownerID string) (*models.Account, error)
	GetAccountByOwner(ctx context.Context, ownerID string) (*models.Account, error)
	LockAccountByOwner(tx *gorm.DB, ownerID string) (*models.Account, error)
	ApplyDelta(tx *gorm.DB, accountID string, delta decimal.Decimal) (*models.Account, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, name string, categoryType models.TransactionType) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ResolveCategory(ctx context.Context, ref string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// TransactionInput carries the fields of a new transaction or planned
// transaction. Category is either a category id or an exact category name.
type TransactionInput struct {
	Type     models.TransactionType
	Category string
	Date     time.Time
	Amount   decimal.Decimal
	Comment  string
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, ownerID string, input TransactionInput) (*models.Transaction, *models.Account, error)
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) (*models.Account, error)
	GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*models.Transaction, error)
	GetLatestTransactions(ctx context.Context, ownerID string, limit int) ([]models.Transaction, error)
	FilterTransactions(ctx context.Context, ownerID string, query TransactionQuery) ([]models.Transaction, error)
	GetStatistics(ctx context.Context, ownerID string, period DateRange) (*Statistics, error)
}

// PlannedTransactionServicer defines the contract for scheduled transactions.
type PlannedTransactionServicer interface {
	CreatePlannedTransaction(ctx context.Context, ownerID string, input TransactionInput) (*models.PlanningTransaction, error)
	DeletePlannedTransaction(ctx context.Context, ownerID, planID string) error
	GetPlannedTransactions(ctx context.Context, ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.PlanningTransaction], error)
	GetPlannedStatistics(ctx context.Context, ownerID string, period DateRange) (*Totals, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
