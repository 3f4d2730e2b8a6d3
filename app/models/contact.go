package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contact struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID    string `gorm:"size:36;not null;index"`
	User      User   `gorm:"foreignKey:UserID"`
	City      string `gorm:"size:50;not null"`
	Street    string `gorm:"size:50;not null"`
	House     string `gorm:"size:50"`
	Apartment string `gorm:"size:50"`
	Phone     string `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
