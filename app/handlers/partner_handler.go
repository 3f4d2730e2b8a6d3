package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/retailnet/orders-api/app/helpers"
	"github.com/retailnet/orders-api/app/middlewares"
	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/repositories"
	"github.com/retailnet/orders-api/app/services"
	"github.com/unrolled/render"
)

// price lists can be large but are bounded; anything bigger is junk
const maxPriceListBytes = 8 << 20

type PartnerHandler struct {
	importer *services.ImporterService
	orders   *services.OrderService
	shopRepo repositories.ShopRepository
	render   *render.Render
}

func NewPartnerHandler(
	importer *services.ImporterService,
	orders *services.OrderService,
	shopRepo repositories.ShopRepository,
	rnd *render.Render,
) *PartnerHandler {
	return &PartnerHandler{importer, orders, shopRepo, rnd}
}

// Update ingests an uploaded price list and replaces the caller's catalog.
func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPriceListBytes))
	if err != nil {
		writeError(h.render, w, fmt.Errorf("%w: could not read body", apperrors.ErrValidation))
		return
	}

	result, err := h.importer.ImportCatalog(r.Context(), user.ID, r.Header.Get("Content-Type"), body)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"Status": true, "Result": result})
}

func (h *PartnerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	shop, err := h.shopRepo.FindByUserID(r.Context(), user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if shop == nil {
		writeError(h.render, w, fmt.Errorf("%w: no shop for user", apperrors.ErrNotFound))
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"Status": true,
		"Shop":   shopView{ID: shop.ID, Name: shop.Name, URL: shop.URL, State: shop.State},
	})
}

type setStateRequest struct {
	State *bool `json:"state" validate:"required"`
}

func (h *PartnerHandler) SetState(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}
	if user.Type != models.UserTypeShop {
		writeError(h.render, w, fmt.Errorf("%w: shop account required", apperrors.ErrAuthorization))
		return
	}

	var req setStateRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		writeError(h.render, w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if req.State == nil {
		writeFieldErrors(h.render, w, map[string]string{"state": "State is required."})
		return
	}

	shop, err := h.shopRepo.FindByUserID(r.Context(), user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if shop == nil {
		writeError(h.render, w, fmt.Errorf("%w: no shop for user", apperrors.ErrNotFound))
		return
	}

	if err := h.shopRepo.UpdateState(r.Context(), shop.ID, *req.State); err != nil {
		writeError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"Status": true, "State": *req.State})
}

// Orders lists placed orders touching the partner's shop, sliced to the
// partner's lines with per-slice totals.
func (h *PartnerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	views, err := h.orders.ListForPartner(r.Context(), user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"Status": true, "Orders": newOrderViews(views)})
}
