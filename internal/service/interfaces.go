package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"assignment_hub/internal/domain"
)

type AssignmentStore interface {
	// ExistingSourceIDs returns which of the given source ids already have a
	// stored assignment.
	ExistingSourceIDs(ctx context.Context, sourceIDs []string) (map[string]struct{}, error)
	Create(ctx context.Context, assignment *domain.Assignment) (int64, error)
}

type ClientStore interface {
	// UpsertByName creates the client if missing and is a no-op otherwise.
	UpsertByName(ctx context.Context, name string) error
}

type Source interface {
	Name() string
	FetchAssignments(ctx context.Context) ([]domain.Assignment, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, assignment *domain.Assignment) error
	Close() error
}
