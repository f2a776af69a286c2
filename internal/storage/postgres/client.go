package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"assignment_hub/internal/domain"
)

type ClientStore struct {
	db *sqlx.DB
}

func NewClientStore(db *sqlx.DB) *ClientStore {
	return &ClientStore{db: db}
}

// UpsertByName creates the client if missing. The unique constraint on name
// makes the upsert atomic, so concurrent syncs cannot create duplicates.
func (s *ClientStore) UpsertByName(ctx context.Context, name string) error {
	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx,
		`INSERT INTO legal_entity_clients (name) VALUES ($1)
		 ON CONFLICT (name) DO NOTHING`,
		name,
	)
	return err
}

// GetByName resolves a client row, returning domain.ErrNotFound when the
// name is unknown.
func (s *ClientStore) GetByName(ctx context.Context, name string) (*domain.LegalEntityClient, error) {
	exec := GetExecutor(ctx, s.db)

	var client domain.LegalEntityClient
	err := sqlx.GetContext(ctx, exec, &client,
		"SELECT id, name FROM legal_entity_clients WHERE name = $1", name)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}
