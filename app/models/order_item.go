package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem holds one SKU line of an order. The (order, product_info) pair is
// unique; adding the same SKU again overwrites the quantity instead of
// creating a second row.
type OrderItem struct {
	ID            string      `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID       string      `gorm:"size:36;not null;uniqueIndex:idx_order_product_info"`
	Order         Order       `gorm:"foreignKey:OrderID"`
	ProductInfoID string      `gorm:"size:36;not null;uniqueIndex:idx_order_product_info;index"`
	ProductInfo   ProductInfo `gorm:"foreignKey:ProductInfoID"`
	Quantity      int         `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
