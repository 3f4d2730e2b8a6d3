package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// APIToken is the credential the auth middleware resolves from the
// Authorization header. Rows are provisioned out of band (see cmd issue-token).
type APIToken struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Key       string `gorm:"size:64;not null;uniqueIndex"`
	UserID    string `gorm:"size:36;not null;index"`
	User      User   `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
}

func (t *APIToken) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}
