package models

import "time"

// User is the identity that owns exactly one Account.
type User struct {
	Base
	Username    string     `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password    string     `gorm:"not null" json:"-"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	Account     *Account   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
}
