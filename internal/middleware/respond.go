package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/cyberkittens/cyberkittens-go/internal/model"
)

func writeJSONError(w http.ResponseWriter, status int, name, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.NewErrorResponse(name, msg))
}
