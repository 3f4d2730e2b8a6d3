package repositories

import (
	"context"
	"errors"

	"github.com/retailnet/orders-api/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FirstOrCreateBasket(ctx context.Context, tx *gorm.DB, userID string) (*models.Order, error)
	FindBasket(ctx context.Context, tx *gorm.DB, userID string) (*models.Order, error)
	FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Order, error)
	Save(ctx context.Context, tx *gorm.DB, order *models.Order) error
	ListPlacedByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListPlacedForShop(ctx context.Context, shopID string) ([]models.Order, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

// FirstOrCreateBasket is the only sanctioned way to obtain a user's live
// basket. Ran inside the caller's transaction it re-checks before inserting,
// so concurrent callers converge on one row.
func (r *gormOrderRepository) FirstOrCreateBasket(ctx context.Context, tx *gorm.DB, userID string) (*models.Order, error) {
	var order models.Order
	err := tx.WithContext(ctx).
		Where(models.Order{UserID: userID, State: models.OrderStateBasket}).
		FirstOrCreate(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindBasket(ctx context.Context, tx *gorm.DB, userID string) (*models.Order, error) {
	var order models.Order
	err := tx.WithContext(ctx).
		Preload("OrderItems.ProductInfo.Product").
		First(&order, "user_id = ? AND state = ?", userID, models.OrderStateBasket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := tx.WithContext(ctx).
		Preload("OrderItems.ProductInfo.Shop").
		Preload("OrderItems.ProductInfo.Product").
		Preload("Contact").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) Save(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Save(order).Error
}

func (r *gormOrderRepository) ListPlacedByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems.ProductInfo.Product").
		Preload("Contact").
		Where("user_id = ? AND state <> ?", userID, models.OrderStateBasket).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListPlacedForShop returns every placed order holding at least one line of
// the given shop. Items are loaded unsliced; the service trims them to the
// partner's lines.
func (r *gormOrderRepository) ListPlacedForShop(ctx context.Context, shopID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems.ProductInfo.Product").
		Preload("Contact").
		Where("orders.state <> ?", models.OrderStateBasket).
		Where("orders.id IN (?)", r.db.
			Table("order_items").
			Select("order_items.order_id").
			Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
			Where("product_infos.shop_id = ?", shopID)).
		Order("orders.created_at DESC").
		Find(&orders).Error
	return orders, err
}
