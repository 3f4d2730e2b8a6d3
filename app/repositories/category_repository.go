package repositories

import (
	"context"
	"errors"

	"github.com/retailnet/orders-api/app/models"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Category, error)
	UpsertByName(ctx context.Context, tx *gorm.DB, name string) (*models.Category, error)
}

type gormCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &gormCategoryRepository{db: db}
}

func (r *gormCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *gormCategoryRepository) ListByShop(ctx context.Context, shopID string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Joins("JOIN shop_categories ON shop_categories.category_id = categories.id").
		Where("shop_categories.shop_id = ?", shopID).
		Order("categories.name").
		Find(&categories).Error
	return categories, err
}

func (r *gormCategoryRepository) UpsertByName(ctx context.Context, tx *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	err := tx.WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.Category{Name: name}
		if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
			return nil, err
		}
		return &category, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
