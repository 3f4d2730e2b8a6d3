package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/retailnet/orders-api/app/helpers"
	"github.com/retailnet/orders-api/app/middlewares"
	"github.com/retailnet/orders-api/app/services"
	"github.com/unrolled/render"
)

type BasketHandler struct {
	basket   *services.BasketService
	render   *render.Render
	validate *validator.Validate
}

func NewBasketHandler(basket *services.BasketService, rnd *render.Render) *BasketHandler {
	return &BasketHandler{basket, rnd, validator.New()}
}

type basketItemRequest struct {
	ProductInfoID string `json:"product_info_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
}

type basketItemsRequest struct {
	Items []basketItemRequest `json:"items" validate:"required,min=1,dive"`
}

type basketDeleteRequest struct {
	Items []string `json:"items" validate:"required,min=1"`
}

type basketResponse struct {
	Status bool            `json:"Status"`
	ID     string          `json:"id"`
	Items  []orderItemView `json:"items"`
	Total  string          `json:"total"`
}

// Get returns the caller's basket with its derived total.
func (h *BasketHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	view, err := h.basket.Get(r.Context(), user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, basketResponse{
		Status: true,
		ID:     view.Order.ID,
		Items:  newOrderItemViews(view.Order.OrderItems),
		Total:  view.Total.String(),
	})
}

// AddItems adds or overwrites basket lines; POST and PUT behave alike since
// a repeated SKU merges by replacing the quantity.
func (h *BasketHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	var req basketItemsRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		writeError(h.render, w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			writeFieldErrors(h.render, w, helpers.FormatValidationErrors(verrs))
			return
		}
		writeError(h.render, w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}

	for _, item := range req.Items {
		if _, err := h.basket.AddOrUpdateItem(r.Context(), user.ID, item.ProductInfoID, item.Quantity); err != nil {
			writeError(h.render, w, err)
			return
		}
	}

	h.Get(w, r)
}

// DeleteItems removes the named SKU lines from the basket.
func (h *BasketHandler) DeleteItems(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	var req basketDeleteRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		writeError(h.render, w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			writeFieldErrors(h.render, w, helpers.FormatValidationErrors(verrs))
			return
		}
		writeError(h.render, w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}

	for _, productInfoID := range req.Items {
		if err := h.basket.RemoveItem(r.Context(), user.ID, productInfoID); err != nil {
			writeError(h.render, w, err)
			return
		}
	}

	h.Get(w, r)
}
