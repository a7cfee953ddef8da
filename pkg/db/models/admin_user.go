package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a back-office operator allowed to decide orders and edit
// site settings.
type AdminUser struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string     `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Name         string     `gorm:"column:name;not null" json:"name"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true" json:"isActive"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
