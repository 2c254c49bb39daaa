package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cyberkittens/cyberkittens-go/internal/model"
)

// KittenRepository handles kitten persistence operations.
type KittenRepository struct {
	db *sql.DB
}

// NewKittenRepository creates a new KittenRepository.
func NewKittenRepository(db *sql.DB) *KittenRepository {
	return &KittenRepository{db: db}
}

// Create inserts a kitten and sets the generated ID on it.
func (r *KittenRepository) Create(ctx context.Context, kitten *model.Kitten) error {
	query := `INSERT INTO kittens (owner_id, name, color, age) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, kitten.OwnerID, kitten.Name, kitten.Color, kitten.Age)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrOwnerNotFound
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	kitten.ID = id
	return nil
}

// GetByID retrieves a kitten by primary key.
func (r *KittenRepository) GetByID(ctx context.Context, id int64) (*model.Kitten, error) {
	query := `SELECT id, owner_id, name, color, age FROM kittens WHERE id = ?`

	kitten := &model.Kitten{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&kitten.ID, &kitten.OwnerID, &kitten.Name, &kitten.Color, &kitten.Age,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKittenNotFound
		}
		return nil, err
	}

	return kitten, nil
}

// Delete removes the kitten row. The owner is part of the predicate so a row
// that changed hands between lookup and delete is left alone.
func (r *KittenRepository) Delete(ctx context.Context, kitten *model.Kitten) error {
	query := `DELETE FROM kittens WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query, kitten.ID, kitten.OwnerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrKittenNotFound
	}

	return nil
}
