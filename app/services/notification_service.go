package services

import (
	"log"

	"github.com/retailnet/orders-api/app/models"
	"github.com/shopspring/decimal"
)

// Notifier is the outbound side of order placement and catalog import.
// Implementations must not block the caller; failures are logged, never
// propagated.
type Notifier interface {
	OrderPlaced(user *models.User, order *models.Order, total decimal.Decimal)
	CatalogImported(user *models.User, result *ImportResult)
}

type NotificationService struct {
	mailer *Mailer
}

func NewNotificationService(mailer *Mailer) *NotificationService {
	return &NotificationService{mailer: mailer}
}

func (n *NotificationService) OrderPlaced(user *models.User, order *models.Order, total decimal.Decimal) {
	go func() {
		body := BuildOrderPlacedEmailBody(order.ID, total)
		if err := n.mailer.SendHTMLEmail(user.Email, "Order received", body); err != nil {
			log.Printf("NotificationService.OrderPlaced: %v", err)
		}
	}()
}

func (n *NotificationService) CatalogImported(user *models.User, result *ImportResult) {
	go func() {
		body := BuildCatalogImportedEmailBody(result)
		if err := n.mailer.SendHTMLEmail(user.Email, "Price list processed", body); err != nil {
			log.Printf("NotificationService.CatalogImported: %v", err)
		}
	}()
}
