package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cyberkittens/cyberkittens-go/internal/client"
	"github.com/cyberkittens/cyberkittens-go/internal/model"
)

// fakeAPI answers the routes the CLI calls and records the last Authorization header.
type fakeAPI struct {
	mu   sync.Mutex
	auth string
}

func (f *fakeAPI) lastAuth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auth
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.auth = r.Header.Get("Authorization")
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && (r.URL.Path == "/login" || r.URL.Path == "/register"):
		var req model.CredentialsRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(model.NewErrorResponse(model.ErrNameAuthentication, "invalid username or password"))
			return
		}
		json.NewEncoder(w).Encode(model.AuthResponse{Message: "success", Token: "tok-" + req.Username})
	case r.Method == http.MethodGet && r.URL.Path == "/kittens/1":
		json.NewEncoder(w).Encode(model.KittenResponse{Name: "Tom", Color: "black", Age: 2})
	case r.Method == http.MethodPost && r.URL.Path == "/kittens":
		var req model.CreateKittenRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.CreatedKittenResponse{Name: req.Name, Age: req.Age, Color: req.Color})
	case r.Method == http.MethodDelete && r.URL.Path == "/kittens/1":
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(model.NewErrorResponse(model.ErrNameNotFound, "kitten not found"))
	}
}

func setup(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv(apiURLEnv, srv.URL)
	return api
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginStoresToken(t *testing.T) {
	setup(t)

	out, err := run(t, "login", "-u", "alice", "-p", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Login successful") {
		t.Errorf("output = %q", out)
	}

	token, err := readToken()
	if err != nil {
		t.Fatalf("readToken: %v", err)
	}
	if token != "tok-alice" {
		t.Errorf("token = %q, want tok-alice", token)
	}

	home, _ := os.UserHomeDir()
	info, err := os.Stat(filepath.Join(home, ".cyberkittens", "token"))
	if err != nil {
		t.Fatalf("stat token: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoginFailure(t *testing.T) {
	setup(t)

	_, err := run(t, "login", "-u", "alice", "-p", "wrong")

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 APIError", err)
	}
	if _, err := readToken(); !errors.Is(err, errNotLoggedIn) {
		t.Errorf("token stored after failed login: %v", err)
	}
}

func TestRegisterStoresToken(t *testing.T) {
	setup(t)

	if _, err := run(t, "register", "--username", "bob", "--password", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if token, _ := readToken(); token != "tok-bob" {
		t.Errorf("token = %q, want tok-bob", token)
	}
}

func TestKittenCommandsRequireLogin(t *testing.T) {
	setup(t)

	_, err := run(t, "kitten", "get", "1")
	if !errors.Is(err, errNotLoggedIn) {
		t.Errorf("err = %v, want errNotLoggedIn", err)
	}
}

func TestKittenGetRendersTable(t *testing.T) {
	api := setup(t)
	if err := saveToken("tok-alice"); err != nil {
		t.Fatalf("saveToken: %v", err)
	}

	out, err := run(t, "kitten", "get", "1")
	if err != nil {
		t.Fatalf("kitten get: %v", err)
	}
	for _, want := range []string{"NAME", "Tom", "black", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := api.lastAuth(); got != "Bearer tok-alice" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestKittenCreateAndDelete(t *testing.T) {
	setup(t)
	if err := saveToken("tok-alice"); err != nil {
		t.Fatalf("saveToken: %v", err)
	}

	out, err := run(t, "kitten", "create", "--name", "Felix", "--color", "white", "--age", "3")
	if err != nil {
		t.Fatalf("kitten create: %v", err)
	}
	if !strings.Contains(out, "Felix") || !strings.Contains(out, "white") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "kitten", "delete", "1")
	if err != nil {
		t.Fatalf("kitten delete: %v", err)
	}
	if !strings.Contains(out, "Kitten 1 deleted") {
		t.Errorf("output = %q", out)
	}
}

func TestKittenDeleteNotFound(t *testing.T) {
	setup(t)
	if err := saveToken("tok-alice"); err != nil {
		t.Fatalf("saveToken: %v", err)
	}

	_, err := run(t, "kitten", "delete", "9")

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Name != model.ErrNameNotFound {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestKittenBadID(t *testing.T) {
	setup(t)

	if _, err := run(t, "kitten", "get", "abc"); err == nil || !strings.Contains(err.Error(), "invalid kitten id") {
		t.Errorf("err = %v, want invalid id", err)
	}
}

func TestLogoutRemovesToken(t *testing.T) {
	setup(t)
	if err := saveToken("tok-alice"); err != nil {
		t.Fatalf("saveToken: %v", err)
	}

	if _, err := run(t, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := readToken(); !errors.Is(err, errNotLoggedIn) {
		t.Errorf("readToken after logout = %v", err)
	}
	if _, err := run(t, "logout"); err != nil {
		t.Errorf("second logout: %v", err)
	}
}

func TestResolveAPIURL(t *testing.T) {
	t.Setenv(apiURLEnv, "")
	if got := resolveAPIURL(""); got != client.DefaultBaseURL {
		t.Errorf("default = %q", got)
	}
	t.Setenv(apiURLEnv, "http://env.test")
	if got := resolveAPIURL(""); got != "http://env.test" {
		t.Errorf("env = %q", got)
	}
	if got := resolveAPIURL("http://flag.test"); got != "http://flag.test" {
		t.Errorf("flag = %q", got)
	}
}
