package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductInfo is the sellable unit: one shop's priced listing of a product.
// A shop lists a given product at most once; the catalog importer replaces
// these rows wholesale.
type ProductInfo struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string          `gorm:"size:100;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(9,2);not null"`
	PriceRRC  decimal.Decimal `gorm:"type:decimal(9,2);not null"`
	ProductID string          `gorm:"size:36;not null;uniqueIndex:idx_product_shop"`
	Product   Product         `gorm:"foreignKey:ProductID"`
	ShopID    string          `gorm:"size:36;not null;uniqueIndex:idx_product_shop;index"`
	Shop      Shop            `gorm:"foreignKey:ShopID"`

	ProductParameters []ProductParameter
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (pi *ProductInfo) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}
