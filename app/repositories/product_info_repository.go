package repositories

import (
	"context"
	"errors"

	"github.com/retailnet/orders-api/app/models"
	"gorm.io/gorm"
)

type ProductInfoRepository interface {
	FindByID(ctx context.Context, id string) (*models.ProductInfo, error)
	FindByProductAndShop(ctx context.Context, productID, shopID string) (*models.ProductInfo, error)
	ListByShop(ctx context.Context, shopID string) ([]models.ProductInfo, error)
	Search(ctx context.Context, shopID, categoryID string) ([]models.ProductInfo, error)
	Create(ctx context.Context, tx *gorm.DB, info *models.ProductInfo) error
	DeleteByShop(ctx context.Context, tx *gorm.DB, shopID string) error
}

type gormProductInfoRepository struct {
	db *gorm.DB
}

func NewProductInfoRepository(db *gorm.DB) ProductInfoRepository {
	return &gormProductInfoRepository{db: db}
}

func (r *gormProductInfoRepository) FindByID(ctx context.Context, id string) (*models.ProductInfo, error) {
	var info models.ProductInfo
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&info, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *gormProductInfoRepository) FindByProductAndShop(ctx context.Context, productID, shopID string) (*models.ProductInfo, error) {
	var info models.ProductInfo
	err := r.db.WithContext(ctx).
		First(&info, "product_id = ? AND shop_id = ?", productID, shopID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *gormProductInfoRepository) ListByShop(ctx context.Context, shopID string) ([]models.ProductInfo, error) {
	var infos []models.ProductInfo
	err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("ProductParameters.Parameter").
		Where("shop_id = ?", shopID).
		Order("name").
		Find(&infos).Error
	return infos, err
}

func (r *gormProductInfoRepository) Search(ctx context.Context, shopID, categoryID string) ([]models.ProductInfo, error) {
	q := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Shop").
		Preload("ProductParameters.Parameter")
	if shopID != "" {
		q = q.Where("shop_id = ?", shopID)
	}
	if categoryID != "" {
		q = q.Joins("JOIN products ON products.id = product_infos.product_id").
			Where("products.category_id = ?", categoryID)
	}

	var infos []models.ProductInfo
	err := q.Order("product_infos.name").Find(&infos).Error
	return infos, err
}

func (r *gormProductInfoRepository) Create(ctx context.Context, tx *gorm.DB, info *models.ProductInfo) error {
	return tx.WithContext(ctx).Create(info).Error
}

// DeleteByShop removes a shop's whole catalog. Referencing rows go first and
// explicitly: parameter values and any order items still pointing at the old
// SKUs. The cascade into order items is the documented replace policy, and
// doing it here keeps the behavior identical across SQL backends.
func (r *gormProductInfoRepository) DeleteByShop(ctx context.Context, tx *gorm.DB, shopID string) error {
	shopInfoIDs := func() *gorm.DB {
		return tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.ProductInfo{}).
			Select("id").
			Where("shop_id = ?", shopID)
	}

	if err := tx.WithContext(ctx).
		Where("product_info_id IN (?)", shopInfoIDs()).
		Delete(&models.ProductParameter{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).
		Where("product_info_id IN (?)", shopInfoIDs()).
		Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Delete(&models.ProductInfo{}).Error
}
