package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/retailnet/orders-api/app/helpers"
	"github.com/retailnet/orders-api/app/middlewares"
	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/repositories"
	"github.com/unrolled/render"
)

type ContactHandler struct {
	contactRepo repositories.ContactRepository
	render      *render.Render
	validate    *validator.Validate
}

func NewContactHandler(contactRepo repositories.ContactRepository, rnd *render.Render) *ContactHandler {
	return &ContactHandler{contactRepo, rnd, validator.New()}
}

type createContactRequest struct {
	City      string `json:"city" validate:"required"`
	Street    string `json:"street" validate:"required"`
	House     string `json:"house"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone" validate:"required"`
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	contacts, err := h.contactRepo.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	views := make([]contactView, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, contactView{
			ID: c.ID, City: c.City, Street: c.Street,
			House: c.House, Apartment: c.Apartment, Phone: c.Phone,
		})
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"Status": true, "Contacts": views})
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperrors.ErrAuthorization)
		return
	}

	var req createContactRequest
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

	contact := &models.Contact{
		UserID:    user.ID,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Apartment: req.Apartment,
		Phone:     req.Phone,
	}
	if err := h.contactRepo.Create(r.Context(), contact); err != nil {
		writeError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"Status": true,
		"Contact": contactView{
			ID: contact.ID, City: contact.City, Street: contact.Street,
			House: contact.House, Apartment: contact.Apartment, Phone: contact.Phone,
		},
	})
}
