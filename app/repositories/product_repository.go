package repositories

import (
	"context"
	"errors"

	"github.com/retailnet/orders-api/app/models"
	"gorm.io/gorm"
)

type ProductRepository interface {
	List(ctx context.Context, categoryID string) ([]models.Product, error)
	UpsertByNameAndCategory(ctx context.Context, tx *gorm.DB, name, categoryID string) (*models.Product, error)
}

type gormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) List(ctx context.Context, categoryID string) ([]models.Product, error) {
	var products []models.Product
	q := r.db.WithContext(ctx).Preload("Category").Order("name")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *gormProductRepository) UpsertByNameAndCategory(ctx context.Context, tx *gorm.DB, name, categoryID string) (*models.Product, error) {
	var product models.Product
	err := tx.WithContext(ctx).First(&product, "name = ? AND category_id = ?", name, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		product = models.Product{Name: name, CategoryID: categoryID}
		if err := tx.WithContext(ctx).Create(&product).Error; err != nil {
			return nil, err
		}
		return &product, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
