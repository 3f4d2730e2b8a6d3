package repositories

import (
	"context"
	"errors"

	"github.com/retailnet/orders-api/app/models"
	"gorm.io/gorm"
)

type ParameterRepository interface {
	UpsertByName(ctx context.Context, tx *gorm.DB, name string) (*models.Parameter, error)
	CreateProductParameter(ctx context.Context, tx *gorm.DB, pp *models.ProductParameter) error
}

type gormParameterRepository struct {
	db *gorm.DB
}

func NewParameterRepository(db *gorm.DB) ParameterRepository {
	return &gormParameterRepository{db: db}
}

func (r *gormParameterRepository) UpsertByName(ctx context.Context, tx *gorm.DB, name string) (*models.Parameter, error) {
	var parameter models.Parameter
	err := tx.WithContext(ctx).First(&parameter, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		parameter = models.Parameter{Name: name}
		if err := tx.WithContext(ctx).Create(&parameter).Error; err != nil {
			return nil, err
		}
		return &parameter, nil
	}
	if err != nil {
		return nil, err
	}
	return &parameter, nil
}

func (r *gormParameterRepository) CreateProductParameter(ctx context.Context, tx *gorm.DB, pp *models.ProductParameter) error {
	return tx.WithContext(ctx).Create(pp).Error
}
