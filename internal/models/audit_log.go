package models

// AuditLog records sensitive operations. UserID is nil for actions taken
// with the admin key rather than as a user.
type AuditLog struct {
	Base
	UserID       *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action       string  `gorm:"size:64;not null;index" json:"action"`
	ResourceType string  `gorm:"size:64;not null" json:"resource_type"`
	ResourceID   *string `gorm:"type:uuid" json:"resource_id,omitempty"`
	IPAddress    string  `gorm:"size:64" json:"ip_address"`
	Changes      string  `json:"changes,omitempty"`
}
