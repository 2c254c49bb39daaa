package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"

	"github.com/cyberkittens/cyberkittens-go/internal/crypto"
	"github.com/cyberkittens/cyberkittens-go/internal/middleware"
	"github.com/cyberkittens/cyberkittens-go/internal/model"
	"github.com/cyberkittens/cyberkittens-go/internal/repository"
	"github.com/cyberkittens/cyberkittens-go/internal/service"
)

const testSecret = "handler-test-secret"

// newTestRouter wires the real services over a sqlmock database.
func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock, *crypto.TokenCodec) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return routerFor(db), mock, crypto.NewTokenCodec(testSecret, time.Hour)
}

func routerFor(db *sql.DB) http.Handler {
	codec := crypto.NewTokenCodec(testSecret, time.Hour)
	authHandler := NewAuthHandler(service.NewAuthService(repository.NewUserRepository(db), codec))
	kittenHandler := NewKittenHandler(service.NewKittenService(repository.NewKittenRepository(db)))

	r := chi.NewRouter()
	r.Use(middleware.Authenticate(codec))
	r.Get("/", HandleHome)
	r.Post("/register", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)
	r.Post("/kittens", kittenHandler.HandleCreateKitten)
	r.Get("/kittens/{id}", kittenHandler.HandleGetKitten)
	r.Delete("/kittens/{id}", kittenHandler.HandleDeleteKitten)
	return r
}

func bearer(t *testing.T, codec *crypto.TokenCodec, id int64, username string) string {
	t.Helper()
	token, err := codec.Sign(model.Identity{ID: id, Username: username})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return "Bearer " + token
}

func do(h http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("sql expectations: %v", err)
	}
}
