package handler

import (
	"net/http"

	"github.com/cyberkittens/cyberkittens-go/internal/middleware"
	"github.com/cyberkittens/cyberkittens-go/internal/model"
	"github.com/cyberkittens/cyberkittens-go/internal/service"
)

// KittenHandler handles HTTP requests for kittens. Every route requires an identity.
type KittenHandler struct {
	service *service.KittenService
}

// NewKittenHandler creates a new KittenHandler.
func NewKittenHandler(svc *service.KittenService) *KittenHandler {
	return &KittenHandler{service: svc}
}

// HandleGetKitten handles GET /kittens/{id} requests.
func (h *KittenHandler) HandleGetKitten(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	id, err := kittenID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.service.GetKitten(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreateKitten handles POST /kittens requests.
func (h *KittenHandler) HandleCreateKitten(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	var req model.CreateKittenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.service.CreateKitten(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleDeleteKitten handles DELETE /kittens/{id} requests.
func (h *KittenHandler) HandleDeleteKitten(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	id, err := kittenID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeleteKitten(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
