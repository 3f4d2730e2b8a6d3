package handlers

import (
	"log"
	"net/http"

	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Status  bool   `json:"Status"`
	Error   string `json:"Error"`
	Message string `json:"Message"`
}

type fieldErrorResponse struct {
	Status bool              `json:"Status"`
	Error  string            `json:"Error"`
	Fields map[string]string `json:"Fields"`
}

// writeError maps a service error chain onto the wire taxonomy. Anything
// unrecognized is logged and reported as internal without leaking storage
// details.
func writeError(rnd *render.Render, w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("handler error: %v", err)
		_ = rnd.JSON(w, status, errorResponse{Status: false, Error: "internal_error", Message: "internal error"})
		return
	}
	_ = rnd.JSON(w, status, errorResponse{Status: false, Error: apperrors.Code(err), Message: err.Error()})
}

func writeFieldErrors(rnd *render.Render, w http.ResponseWriter, fields map[string]string) {
	_ = rnd.JSON(w, http.StatusBadRequest, fieldErrorResponse{Status: false, Error: "validation_error", Fields: fields})
}
