package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/retailnet/orders-api/app/helpers"
	"github.com/retailnet/orders-api/app/middlewares"
	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/services"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	orders *services.OrderService
	render *render.Render
}

func NewOrderHandler(orders *services.OrderService, rnd *render.Render) *OrderHandler {
	return &OrderHandler{orders, rnd}
}

type orderItemView struct {
	ProductInfoID string `json:"product_info_id"`
	Product       string `json:"product"`
	Model         string `json:"model"`
	Quantity      int    `json:"quantity"`
	Price         string `json:"price"`
}

type contactView struct {
	ID        string `json:"id"`
	City      string `json:"city"`
	Street    string `json:"street"`
	House     string `json:"house,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Phone     string `json:"phone"`
}

type orderView struct {
	ID        string          `json:"id"`
	State     string          `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	Contact   *contactView    `json:"contact,omitempty"`
	Items     []orderItemView `json:"items"`
	Total     string          `json:"total"`
}

func newOrderItemViews(items []models.OrderItem) []orderItemView {
	views := make([]orderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, orderItemView{
			ProductInfoID: item.ProductInfoID,
			Product:       item.ProductInfo.Product.Name,
			Model:         item.ProductInfo.Name,
			Quantity:      item.Quantity,
			Price:         item.ProductInfo.Price.String(),
		})
	}
	return views
}

func newOrderViews(views []services.OrderView) []orderView {
	out := make([]orderView, 0, len(views))
	for _, v := range views {
		ov := orderView{
			ID:        v.Order.ID,
			State:     v.Order.State,
			CreatedAt: v.Order.CreatedAt,
			Items:     newOrderItemViews(v.Items),
			Total:     v.Total.String(),
		}
		if v.Order.Contact != nil {
			c := v.Order.Contact
			ov.Contact = &contactView{
				ID: c.ID, City: c.City, Street: c.Street,
				House: c.House, Apartment: c.Apartment, Phone: c.Phone,
			}
		}
		out = append(out, ov)
	}
	return out
}

// List returns the caller's placed orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	views, err := h.orders.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"Status": true, "Orders": newOrderViews(views)})
}

type placeRequest struct {
	ContactID string `json:"contact_id"`
}

// Place converts the caller's basket into a new order.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	var req placeRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		writeError(h.render, w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if req.ContactID == "" {
		writeFieldErrors(h.render, w, map[string]string{"contact_id": "ContactID is required."})
		return
	}

	order, err := h.orders.Place(r.Context(), user.ID, req.ContactID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"Status": true,
		"ID":     order.ID,
		"State":  order.State,
	})
}

type advanceRequest struct {
	State string `json:"state"`
}

// Advance moves an order forward in its lifecycle (shop side).
func (h *OrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	orderID := mux.Vars(r)["id"]

	var req advanceRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		writeError(h.render, w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if req.State == "" {
		writeFieldErrors(h.render, w, map[string]string{"state": "State is required."})
		return
	}

	order, err := h.orders.Advance(r.Context(), user.ID, orderID, req.State)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"Status": true,
		"ID":     order.ID,
		"State":  order.State,
	})
}
