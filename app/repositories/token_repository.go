package repositories

import (
	"context"
	"errors"

	"github.com/retailnet/orders-api/app/models"
	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(ctx context.Context, token *models.APIToken) error
	FindByKey(ctx context.Context, key string) (*models.APIToken, error)
}

type gormTokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &gormTokenRepository{db: db}
}

func (r *gormTokenRepository) Create(ctx context.Context, token *models.APIToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *gormTokenRepository) FindByKey(ctx context.Context, key string) (*models.APIToken, error) {
	var token models.APIToken
	err := r.db.WithContext(ctx).Preload("User").First(&token, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}
