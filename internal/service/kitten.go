package service

import (
	"context"
	"errors"

	"github.com/cyberkittens/cyberkittens-go/internal/metrics"
	"github.com/cyberkittens/cyberkittens-go/internal/model"
	"github.com/cyberkittens/cyberkittens-go/internal/repository"
)

// KittenStore is the persistence the kitten operations need.
type KittenStore interface {
	Create(ctx context.Context, kitten *model.Kitten) error
	GetByID(ctx context.Context, id int64) (*model.Kitten, error)
	Delete(ctx context.Context, kitten *model.Kitten) error
}

// KittenService handles kitten business logic. Every operation is scoped to the caller.
type KittenService struct {
	kittens KittenStore
}

// NewKittenService creates a new KittenService.
func NewKittenService(kittens KittenStore) *KittenService {
	return &KittenService{kittens: kittens}
}

// GetKitten returns the caller's kitten with the given id.
func (s *KittenService) GetKitten(ctx context.Context, caller model.Identity, id int64) (model.KittenResponse, error) {
	kitten, err := s.owned(ctx, caller, id)
	if err != nil {
		metrics.RecordKittenOp("get", outcome(err))
		return model.KittenResponse{}, err
	}

	metrics.RecordKittenOp("get", "success")
	return kitten.ToResponse(), nil
}

// CreateKitten creates a kitten owned by the caller.
func (s *KittenService) CreateKitten(ctx context.Context, caller model.Identity, req model.CreateKittenRequest) (model.CreatedKittenResponse, error) {
	if caller.ID <= 0 {
		return model.CreatedKittenResponse{}, ErrUnauthenticated
	}
	if err := validateStruct(req); err != nil {
		metrics.RecordKittenOp("create", "invalid")
		return model.CreatedKittenResponse{}, err
	}

	kitten := &model.Kitten{
		OwnerID: caller.ID,
		Name:    req.Name,
		Color:   req.Color,
		Age:     req.Age,
	}

	if err := s.kittens.Create(ctx, kitten); err != nil {
		// The token outlived its user.
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return model.CreatedKittenResponse{}, ErrUnauthenticated
		}
		return model.CreatedKittenResponse{}, err
	}

	metrics.RecordKittenOp("create", "success")
	return model.CreatedKittenResponse{Name: kitten.Name, Age: kitten.Age, Color: kitten.Color}, nil
}

// DeleteKitten removes the caller's kitten with the given id.
func (s *KittenService) DeleteKitten(ctx context.Context, caller model.Identity, id int64) error {
	kitten, err := s.owned(ctx, caller, id)
	if err != nil {
		metrics.RecordKittenOp("delete", outcome(err))
		return err
	}

	if err := s.kittens.Delete(ctx, kitten); err != nil {
		if errors.Is(err, repository.ErrKittenNotFound) {
			return ErrKittenNotFound
		}
		return err
	}

	metrics.RecordKittenOp("delete", "success")
	return nil
}

// owned loads the kitten and checks existence before ownership.
func (s *KittenService) owned(ctx context.Context, caller model.Identity, id int64) (*model.Kitten, error) {
	if caller.ID <= 0 {
		return nil, ErrUnauthenticated
	}

	kitten, err := s.kittens.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrKittenNotFound) {
			return nil, ErrKittenNotFound
		}
		return nil, err
	}

	if kitten.OwnerID != caller.ID {
		return nil, ErrForbidden
	}

	return kitten, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrKittenNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "error"
	}
}
