package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homebook/internal/models"
)

// Models lists every persisted model, parents before children.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.PlanningTransaction{},
		&models.AuditLog{},
	}
}

// AutoMigrate creates the schema from the models. The SQL migrations are
// authoritative in deployed environments; this serves tests and local runs.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return EnsureDefaults(db)
}

// EnsureDefaults inserts the fallback category if it is missing.
func EnsureDefaults(db *gorm.DB) error {
	category := &models.Category{
		Base: models.Base{ID: models.DefaultCategoryID},
		Type: models.TransactionTypeExpense,
		Name: models.DefaultCategoryName,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(category).Error; err != nil {
		return fmt.Errorf("seed default category: %w", err)
	}
	return nil
}
