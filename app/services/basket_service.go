package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BasketView is a basket with its derived total, recomputed from current
// catalog prices on every read.
type BasketView struct {
	Order *models.Order
	Total decimal.Decimal
}

type BasketService struct {
	db              *gorm.DB
	orderRepo       repositories.OrderRepository
	orderItemRepo   repositories.OrderItemRepository
	productInfoRepo repositories.ProductInfoRepository
}

func NewBasketService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	productInfoRepo repositories.ProductInfoRepository,
) *BasketService {
	return &BasketService{
		db:              db,
		orderRepo:       orderRepo,
		orderItemRepo:   orderItemRepo,
		productInfoRepo: productInfoRepo,
	}
}

// GetOrCreateBasket returns the user's single live basket, creating one when
// none exists. Callers never insert basket orders directly.
func (s *BasketService) GetOrCreateBasket(ctx context.Context, userID string) (*models.Order, error) {
	var basket *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		basket, err = s.orderRepo.FirstOrCreateBasket(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create basket: %w", err)
	}
	return basket, nil
}

// AddOrUpdateItem puts a SKU into the basket. An existing line for the same
// SKU has its quantity overwritten; the unique constraint on
// (order, product_info) is the backstop against duplicates under concurrency,
// and a constraint hit is translated into the update path.
func (s *BasketService) AddOrUpdateItem(ctx context.Context, userID, productInfoID string, quantity int) (*models.OrderItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidQuantity, quantity)
	}

	info, err := s.productInfoRepo.FindByID(ctx, productInfoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if info == nil {
		return nil, fmt.Errorf("%w: product listing %s", apperrors.ErrNotFound, productInfoID)
	}

	var item *models.OrderItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		basket, err := s.orderRepo.FirstOrCreateBasket(ctx, tx, userID)
		if err != nil {
			return err
		}

		item = &models.OrderItem{
			OrderID:       basket.ID,
			ProductInfoID: productInfoID,
			Quantity:      quantity,
		}
		err = s.orderItemRepo.Create(ctx, tx, item)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("BasketService.AddOrUpdateItem: merging duplicate line for basket %s", basket.ID)
			if err := s.orderItemRepo.UpdateQuantity(ctx, tx, basket.ID, productInfoID, quantity); err != nil {
				return err
			}
			item, err = s.orderItemRepo.FindByOrderAndProductInfo(ctx, tx, basket.ID, productInfoID)
			return err
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add basket item: %w", err)
	}
	return item, nil
}

// RemoveItem deletes one SKU line by the same uniqueness key the merge uses.
func (s *BasketService) RemoveItem(ctx context.Context, userID, productInfoID string) error {
	basket, err := s.orderRepo.FindBasket(ctx, s.db, userID)
	if err != nil {
		return fmt.Errorf("failed to load basket: %w", err)
	}
	if basket == nil {
		return fmt.Errorf("%w: no active basket", apperrors.ErrNotFound)
	}

	affected, err := s.orderItemRepo.Delete(ctx, basket.ID, productInfoID)
	if err != nil {
		return fmt.Errorf("failed to remove basket item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: listing %s is not in the basket", apperrors.ErrNotFound, productInfoID)
	}
	return nil
}

// Get loads the basket with its lines and derived total.
func (s *BasketService) Get(ctx context.Context, userID string) (*BasketView, error) {
	basket, err := s.GetOrCreateBasket(ctx, userID)
	if err != nil {
		return nil, err
	}

	loaded, err := s.orderRepo.FindByID(ctx, s.db, basket.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load basket: %w", err)
	}

	total, err := s.ComputeTotal(ctx, basket.ID)
	if err != nil {
		return nil, err
	}
	return &BasketView{Order: loaded, Total: total}, nil
}

// ComputeTotal sums quantity × current price over the order's lines.
func (s *BasketService) ComputeTotal(ctx context.Context, orderID string) (decimal.Decimal, error) {
	total, err := s.orderItemRepo.TotalForOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute total: %w", err)
	}
	return total, nil
}
