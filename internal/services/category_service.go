package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "homebook/internal/errors"
	"homebook/internal/models"
	"homebook/internal/uuid"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. Names are unique and compared
// case-sensitively.
func (s *categoryService) CreateCategory(ctx context.Context, name string, categoryType models.TransactionType) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if categoryType != models.TransactionTypeExpense && categoryType != models.TransactionTypeIncome {
		return nil, apperrors.ErrInvalidTransactionType
	}

	category := &models.Category{Name: name, Type: categoryType}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// ListCategories returns every category ordered by name.
func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// FindCategoryByName looks a category up by exact, case-sensitive name.
func (s *categoryService) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	// Postgres compares case-sensitively already; the check keeps SQLite and
	// case-insensitive collations in line.
	if len(categories) == 0 || categories[0].Name != name {
		return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound, "category \""+name+"\" not found")
	}
	return &categories[0], nil
}

// ResolveCategory accepts either a category id or a category name and is
// the single lookup used by the add and filter paths.
func (s *categoryService) ResolveCategory(ctx context.Context, ref string) (*models.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if id, err := uuid.Parse(ref); err == nil {
		category, err := s.GetCategoryByID(ctx, id)
		if err == nil || !errors.Is(err, apperrors.ErrCategoryNotFound) {
			return category, err
		}
	}
	return s.FindCategoryByName(ctx, ref)
}

// DeleteCategory removes a category. Every transaction and planned
// transaction that referenced it, including soft-deleted history, is moved
// to the default category first.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if id == models.DefaultCategoryID {
		return apperrors.ErrDefaultCategory
	}

	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Model(&models.Transaction{}).
			Where("category_id = ?", category.ID).
			Update("category_id", models.DefaultCategoryID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Unscoped().Model(&models.PlanningTransaction{}).
			Where("category_plan_id = ?", category.ID).
			Update("category_plan_id", models.DefaultCategoryID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Unscoped().Delete(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
