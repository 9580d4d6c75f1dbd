package models

// DefaultCategoryID identifies the category that transactions fall back to
// when their category is deleted. It is seeded by the initial migration.
const DefaultCategoryID = "00000000-0000-7000-8000-000000000001"

// DefaultCategoryName is the display name of the fallback category.
const DefaultCategoryName = "Uncategorized"

// Category is shared reference data; transactions point to it but never own it.
type Category struct {
	Base
	Type TransactionType `gorm:"not null" json:"type"`
	Name string          `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// IsDefault reports whether c is the fallback category.
func (c *Category) IsDefault() bool {
	return c.ID == DefaultCategoryID
}
