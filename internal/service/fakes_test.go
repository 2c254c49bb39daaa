package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cyberkittens/cyberkittens-go/internal/crypto"
	"github.com/cyberkittens/cyberkittens-go/internal/model"
	"github.com/cyberkittens/cyberkittens-go/internal/repository"
)

const testSecret = "test-secret"

func testCodec() *crypto.TokenCodec {
	return crypto.NewTokenCodec(testSecret, time.Hour)
}

// memUsers is an in-memory UserStore.
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*model.User
	err    error
}

func newMemUsers() *memUsers {
	return &memUsers{byName: make(map[string]*model.User)}
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byName[user.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.byName[user.Username] = &stored
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byName[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// memKittens is an in-memory KittenStore.
type memKittens struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Kitten
	owners map[int64]bool
}

func newMemKittens(owners ...int64) *memKittens {
	m := &memKittens{byID: make(map[int64]*model.Kitten), owners: make(map[int64]bool)}
	for _, o := range owners {
		m.owners[o] = true
	}
	return m
}

func (m *memKittens) Create(_ context.Context, kitten *model.Kitten) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.owners[kitten.OwnerID] {
		return repository.ErrOwnerNotFound
	}
	m.nextID++
	kitten.ID = m.nextID
	stored := *kitten
	m.byID[kitten.ID] = &stored
	return nil
}

func (m *memKittens) GetByID(_ context.Context, id int64) (*model.Kitten, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrKittenNotFound
	}
	cp := *k
	return &cp, nil
}

func (m *memKittens) Delete(_ context.Context, kitten *model.Kitten) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.byID[kitten.ID]
	if !ok || k.OwnerID != kitten.OwnerID {
		return repository.ErrKittenNotFound
	}
	delete(m.byID, kitten.ID)
	return nil
}

var errStoreDown = errors.New("store down")
