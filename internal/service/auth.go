package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cyberkittens/cyberkittens-go/internal/crypto"
	"github.com/cyberkittens/cyberkittens-go/internal/metrics"
	"github.com/cyberkittens/cyberkittens-go/internal/model"
	"github.com/cyberkittens/cyberkittens-go/internal/repository"
)

// UserStore is the persistence the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// TokenSigner issues bearer tokens for an identity.
type TokenSigner interface {
	Sign(id model.Identity) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users  UserStore
	tokens TokenSigner
	logger *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenSigner) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: slog.Default().With("component", "auth"),
	}
}

// Register creates a new user account and returns an auth token.
func (s *AuthService) Register(ctx context.Context, req model.CredentialsRequest) (model.AuthResponse, error) {
	if err := validateStruct(req); err != nil {
		metrics.RecordAuth("register", "invalid")
		return model.AuthResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return model.AuthResponse{}, &ValidationError{Fields: map[string]string{
				"password": "must be at most 72 bytes",
			}}
		}
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			metrics.RecordAuth("register", "conflict")
			return model.AuthResponse{}, ErrUsernameTaken
		}
		return model.AuthResponse{}, err
	}

	token, err := s.tokens.Sign(model.Identity{ID: user.ID, Username: user.Username})
	if err != nil {
		return model.AuthResponse{}, err
	}

	metrics.RecordAuth("register", "success")
	s.logger.Info("user registered", "user_id", user.ID)
	return model.AuthResponse{Message: "success", Token: token}, nil
}

// Login authenticates a user and returns an auth token.
func (s *AuthService) Login(ctx context.Context, req model.CredentialsRequest) (model.AuthResponse, error) {
	if err := validateStruct(req); err != nil {
		metrics.RecordAuth("login", "invalid")
		return model.AuthResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.RecordAuth("login", "failure")
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		metrics.RecordAuth("login", "failure")
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(model.Identity{ID: user.ID, Username: user.Username})
	if err != nil {
		return model.AuthResponse{}, err
	}

	metrics.RecordAuth("login", "success")
	return model.AuthResponse{Message: "success", Token: token}, nil
}
