package services

import (
	"context"
	"fmt"

	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView pairs an order with its derived total. For partner listings the
// items are sliced to the partner's shop and the total covers only that
// slice.
type OrderView struct {
	Order *models.Order
	Items []models.OrderItem
	Total decimal.Decimal
}

type OrderService struct {
	db            *gorm.DB
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	contactRepo   repositories.ContactRepository
	shopRepo      repositories.ShopRepository
	userRepo      repositories.UserRepository
	notifier      Notifier
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	contactRepo repositories.ContactRepository,
	shopRepo repositories.ShopRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
) *OrderService {
	return &OrderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		contactRepo:   contactRepo,
		shopRepo:      shopRepo,
		userRepo:      userRepo,
		notifier:      notifier,
	}
}

// Place converts the user's basket into a placed order: validates lines and
// contact, attaches the contact and moves state to "new". This is the only
// path out of the basket state.
func (s *OrderService) Place(ctx context.Context, userID, contactID string) (*models.Order, error) {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact: %w", err)
	}
	if contact == nil || contact.UserID != userID {
		return nil, fmt.Errorf("%w: contact %s", apperrors.ErrInvalidContact, contactID)
	}

	var placed *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		basket, err := s.orderRepo.FindBasket(ctx, tx, userID)
		if err != nil {
			return err
		}
		if basket == nil {
			return fmt.Errorf("%w: no active basket", apperrors.ErrEmptyBasket)
		}
		if basket.State != models.OrderStateBasket {
			return fmt.Errorf("%w: order is %s", apperrors.ErrInvalidState, basket.State)
		}
		if len(basket.OrderItems) == 0 {
			return apperrors.ErrEmptyBasket
		}

		for _, item := range basket.OrderItems {
			if item.Quantity > item.ProductInfo.Quantity {
				return fmt.Errorf("%w: %q has %d in stock, requested %d",
					apperrors.ErrInsufficientStock, item.ProductInfo.Name, item.ProductInfo.Quantity, item.Quantity)
			}
		}

		basket.ContactID = &contact.ID
		basket.State = models.OrderStateNew
		if err := s.orderRepo.Save(ctx, tx, basket); err != nil {
			return err
		}
		placed = basket
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		total, terr := s.orderItemRepo.TotalForOrder(ctx, placed.ID)
		if terr != nil {
			total = decimal.Zero
		}
		if user, uerr := s.userRepo.FindByID(ctx, userID); uerr == nil && user != nil {
			s.notifier.OrderPlaced(user, placed, total)
		}
	}

	return placed, nil
}

// Advance moves a placed order one step forward in the lifecycle, or cancels
// it. Only a partner with at least one line in the order may do so.
func (s *OrderService) Advance(ctx context.Context, actingUserID, orderID, target string) (*models.Order, error) {
	if !models.IsOrderState(target) {
		return nil, fmt.Errorf("%w: unknown state %q", apperrors.ErrInvalidTransition, target)
	}

	shop, err := s.shopRepo.FindByUserID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}
	if shop == nil {
		return nil, fmt.Errorf("%w: no shop for acting user", apperrors.ErrAuthorization)
	}

	var advanced *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
		}

		owned := false
		for _, item := range order.OrderItems {
			if item.ProductInfo.ShopID == shop.ID {
				owned = true
				break
			}
		}
		if !owned {
			return fmt.Errorf("%w: order has no lines of shop %q", apperrors.ErrAuthorization, shop.Name)
		}

		if !models.CanTransition(order.State, target) {
			return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, order.State, target)
		}

		order.State = target
		if err := s.orderRepo.Save(ctx, tx, order); err != nil {
			return err
		}
		advanced = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return advanced, nil
}

// ListForUser returns the buyer's placed orders with derived totals.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]OrderView, error) {
	orders, err := s.orderRepo.ListPlacedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		total, err := s.orderItemRepo.TotalForOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute total: %w", err)
		}
		views = append(views, OrderView{
			Order: &orders[i],
			Items: orders[i].OrderItems,
			Total: total,
		})
	}
	return views, nil
}

// ListForPartner returns every placed order touching the partner's shop,
// sliced so the partner sees only their own lines and the total of those
// lines. Orders spanning several shops never leak other shops' lines.
func (s *OrderService) ListForPartner(ctx context.Context, userID string) ([]OrderView, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}
	if shop == nil {
		return nil, fmt.Errorf("%w: no shop for user", apperrors.ErrAuthorization)
	}

	orders, err := s.orderRepo.ListPlacedForShop(ctx, shop.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list partner orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		var slice []models.OrderItem
		for _, item := range orders[i].OrderItems {
			if item.ProductInfo.ShopID == shop.ID {
				slice = append(slice, item)
			}
		}

		total, err := s.orderItemRepo.TotalForOrderAndShop(ctx, orders[i].ID, shop.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute partner total: %w", err)
		}
		views = append(views, OrderView{
			Order: &orders[i],
			Items: slice,
			Total: total,
		})
	}
	return views, nil
}
