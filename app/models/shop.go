package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Shop struct {
	ID     string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name   string  `gorm:"size:100;not null"`
	URL    string  `gorm:"size:255"`
	UserID *string `gorm:"size:36;uniqueIndex"`
	User   *User   `gorm:"foreignKey:UserID"`
	// State gates order intake: a closed shop rejects catalog updates.
	State      bool       `gorm:"default:true"`
	Categories []Category `gorm:"many2many:shop_categories;"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Shop) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
