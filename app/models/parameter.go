package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Parameter is a global vocabulary entry for attribute names ("color", "ram").
type Parameter struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Parameter) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

type ProductParameter struct {
	ID            string      `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductInfoID string      `gorm:"size:36;not null;uniqueIndex:idx_info_parameter"`
	ProductInfo   ProductInfo `gorm:"foreignKey:ProductInfoID"`
	ParameterID   string      `gorm:"size:36;not null;uniqueIndex:idx_info_parameter;index"`
	Parameter     Parameter   `gorm:"foreignKey:ParameterID"`
	Value         string      `gorm:"size:255;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (pp *ProductParameter) BeforeCreate(tx *gorm.DB) (err error) {
	if pp.ID == "" {
		pp.ID = uuid.New().String()
	}
	return
}
