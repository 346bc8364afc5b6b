package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Lines and the delivery address are
// frozen jsonb documents; only the status columns and the payment reference
// change after creation. PaymentReference is nullable so the partial unique
// index only bites once a gateway interaction has been initiated.
type OrderModel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	Lines            OrderLinesColumn `gorm:"type:jsonb;not null"`
	TotalPrice       int64            `gorm:"not null"`
	DeliveryAddress  AddressColumn    `gorm:"type:jsonb;not null"`
	PaymentMethod    string           `gorm:"type:varchar(30);not null;default:'card'"`
	PaymentStatus    string           `gorm:"type:varchar(20);not null;default:'pending'"`
	OrderStatus      string           `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentReference *string          `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
