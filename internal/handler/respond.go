package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cyberkittens/cyberkittens-go/internal/model"
	"github.com/cyberkittens/cyberkittens-go/internal/service"
)

var (
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError translates an error into a status and the response envelope.
// Anything unrecognized is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := model.NewErrorResponse(model.ErrNameValidation, verr.Error())
		resp.Fields = verr.Fields
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, errBodyTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, model.NewErrorResponse(model.ErrNameValidation, err.Error()))
	case errors.Is(err, errInvalidBody):
		writeJSON(w, http.StatusBadRequest, model.NewErrorResponse(model.ErrNameValidation, err.Error()))
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, model.NewErrorResponse(model.ErrNameAuthentication, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, model.NewErrorResponse(model.ErrNameAuthorization, err.Error()))
	case errors.Is(err, service.ErrKittenNotFound):
		writeJSON(w, http.StatusNotFound, model.NewErrorResponse(model.ErrNameNotFound, err.Error()))
	case errors.Is(err, service.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, model.NewErrorResponse(model.ErrNameConflict, err.Error()))
	default:
		slog.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeJSON(w, http.StatusInternalServerError, model.NewErrorResponse(model.ErrNameInternal, "internal server error"))
	}
}

// decodeJSON reads a single JSON object from the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errInvalidBody
	}
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return errInvalidBody
	}
	return nil
}

// kittenID parses the {id} path parameter as a positive integer.
func kittenID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &service.ValidationError{Fields: map[string]string{"id": "must be a positive integer"}}
	}
	return id, nil
}
