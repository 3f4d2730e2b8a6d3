package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID         string   `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name       string   `gorm:"size:100;not null;uniqueIndex:idx_product_name_category"`
	CategoryID string   `gorm:"size:36;not null;uniqueIndex:idx_product_name_category;index"`
	Category   Category `gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
