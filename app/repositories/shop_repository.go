package repositories

import (
	"context"
	"errors"

	"github.com/retailnet/orders-api/app/models"
	"gorm.io/gorm"
)

type ShopRepository interface {
	FindByID(ctx context.Context, id string) (*models.Shop, error)
	FindByUserID(ctx context.Context, userID string) (*models.Shop, error)
	ListAll(ctx context.Context) ([]models.Shop, error)
	Upsert(ctx context.Context, tx *gorm.DB, shop *models.Shop) error
	AddCategory(ctx context.Context, tx *gorm.DB, shop *models.Shop, category *models.Category) error
	UpdateState(ctx context.Context, shopID string, state bool) error
}

type gormShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &gormShopRepository{db: db}
}

func (r *gormShopRepository) FindByID(ctx context.Context, id string) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func (r *gormShopRepository) FindByUserID(ctx context.Context, userID string) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).First(&shop, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func (r *gormShopRepository) ListAll(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).Order("name").Find(&shops).Error
	return shops, err
}

// Upsert creates the shop if it has no ID yet, otherwise saves it. Callers
// key shops by owner, so a partner's repeated imports hit the same row.
func (r *gormShopRepository) Upsert(ctx context.Context, tx *gorm.DB, shop *models.Shop) error {
	if shop.ID == "" {
		return tx.WithContext(ctx).Create(shop).Error
	}
	return tx.WithContext(ctx).Save(shop).Error
}

func (r *gormShopRepository) AddCategory(ctx context.Context, tx *gorm.DB, shop *models.Shop, category *models.Category) error {
	return tx.WithContext(ctx).Model(shop).Omit("Categories.*").Association("Categories").Append(category)
}

func (r *gormShopRepository) UpdateState(ctx context.Context, shopID string, state bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", shopID).
		Update("state", state).Error
}
