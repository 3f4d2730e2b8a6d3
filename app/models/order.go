package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStateBasket    = "basket"
	OrderStateNew       = "new"
	OrderStateConfirmed = "confirmed"
	OrderStateAssembled = "assembled"
	OrderStateSent      = "sent"
	OrderStateDelivered = "delivered"
	OrderStateCanceled  = "canceled"
)

// orderStateRank orders the forward sequence. Basket sits before "new" and
// is left only through placement; delivered/canceled are terminal.
var orderStateRank = map[string]int{
	OrderStateBasket:    0,
	OrderStateNew:       1,
	OrderStateConfirmed: 2,
	OrderStateAssembled: 3,
	OrderStateSent:      4,
	OrderStateDelivered: 5,
}

// CanTransition reports whether an already placed order may move from one
// state to the target. Canceling is allowed from any non-terminal state;
// otherwise only the immediate next state in the sequence is legal.
func CanTransition(from, to string) bool {
	if from == OrderStateDelivered || from == OrderStateCanceled || from == OrderStateBasket {
		return false
	}
	if to == OrderStateCanceled {
		return true
	}
	fromRank, ok := orderStateRank[from]
	if !ok {
		return false
	}
	toRank, ok := orderStateRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

// IsOrderState reports whether s names a known lifecycle state.
func IsOrderState(s string) bool {
	if s == OrderStateCanceled {
		return true
	}
	_, ok := orderStateRank[s]
	return ok
}

type Order struct {
	ID         string   `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID     string   `gorm:"size:36;not null;index"`
	User       User     `gorm:"foreignKey:UserID"`
	State      string   `gorm:"size:15;not null;default:'basket';index"`
	ContactID  *string  `gorm:"size:36"`
	Contact    *Contact `gorm:"foreignKey:ContactID"`
	OrderItems []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
