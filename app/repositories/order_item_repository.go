package repositories

import (
	"context"
	"errors"

	"github.com/retailnet/orders-api/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *models.OrderItem) error
	UpdateQuantity(ctx context.Context, tx *gorm.DB, orderID, productInfoID string, quantity int) error
	FindByOrderAndProductInfo(ctx context.Context, tx *gorm.DB, orderID, productInfoID string) (*models.OrderItem, error)
	Delete(ctx context.Context, orderID, productInfoID string) (int64, error)
	TotalForOrder(ctx context.Context, orderID string) (decimal.Decimal, error)
	TotalForOrderAndShop(ctx context.Context, orderID, shopID string) (decimal.Decimal, error)
}

type gormOrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &gormOrderItemRepository{db: db}
}

func (r *gormOrderItemRepository) Create(ctx context.Context, tx *gorm.DB, item *models.OrderItem) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *gormOrderItemRepository) UpdateQuantity(ctx context.Context, tx *gorm.DB, orderID, productInfoID string, quantity int) error {
	return tx.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_id = ? AND product_info_id = ?", orderID, productInfoID).
		Update("quantity", quantity).Error
}

func (r *gormOrderItemRepository) FindByOrderAndProductInfo(ctx context.Context, tx *gorm.DB, orderID, productInfoID string) (*models.OrderItem, error) {
	var item models.OrderItem
	err := tx.WithContext(ctx).
		First(&item, "order_id = ? AND product_info_id = ?", orderID, productInfoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormOrderItemRepository) Delete(ctx context.Context, orderID, productInfoID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("order_id = ? AND product_info_id = ?", orderID, productInfoID).
		Delete(&models.OrderItem{})
	return res.RowsAffected, res.Error
}

// TotalForOrder derives the order total from current catalog prices on every
// read. Nothing is cached or stored.
func (r *gormOrderItemRepository) TotalForOrder(ctx context.Context, orderID string) (decimal.Decimal, error) {
	return r.sumTotal(ctx, r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Where("order_items.order_id = ?", orderID))
}

func (r *gormOrderItemRepository) TotalForOrderAndShop(ctx context.Context, orderID, shopID string) (decimal.Decimal, error) {
	return r.sumTotal(ctx, r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Where("order_items.order_id = ? AND product_infos.shop_id = ?", orderID, shopID))
}

func (r *gormOrderItemRepository) sumTotal(ctx context.Context, q *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := q.Select("COALESCE(SUM(order_items.quantity * product_infos.price), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
