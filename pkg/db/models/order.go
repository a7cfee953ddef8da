package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/batoolapp/lenses-backend/pkg/enums"
)

// Order captures a submitted checkout. OrderCode is the short human-readable
// code printed on invoices; Total is always in the catalog base currency.
type Order struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderCode         string            `gorm:"column:order_code;not null;uniqueIndex" json:"orderId"`
	CustomerName      string            `gorm:"column:customer_name;not null" json:"customerName"`
	CustomerPhone     string            `gorm:"column:customer_phone;not null" json:"customerPhone"`
	CustomerAddress   string            `gorm:"column:customer_address;not null" json:"customerAddress"`
	Date              time.Time         `gorm:"column:date;not null" json:"date"`
	Status            enums.OrderStatus `gorm:"column:status;not null;default:'قيد التجهيز'" json:"status"`
	Total             decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	PaymentReceiptURL string            `gorm:"column:payment_receipt_url;not null;default:''" json:"paymentReceiptUrl"`
	Items             []OrderItem       `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// OrderItem is the immutable snapshot of one cart line at submission time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null" json:"orderId"`
	ProductID string          `gorm:"column:product_id;not null" json:"productId"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	ImageURL  string          `gorm:"column:image_url;not null;default:''" json:"imageUrl"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unitPrice"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null" json:"lineTotal"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
