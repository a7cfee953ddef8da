package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/batoolapp/lenses-backend/pkg/enums"
)

// Customer is upserted at checkout. Email is synthesized from the phone number
// (no real email is collected) and acts as the upsert conflict key.
type Customer struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string               `gorm:"column:name;not null" json:"name"`
	Email     string               `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Phone     string               `gorm:"column:phone;not null" json:"phone"`
	City      string               `gorm:"column:city;not null" json:"city"`
	Status    enums.CustomerStatus `gorm:"column:status;not null;default:'نشط'" json:"status"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
