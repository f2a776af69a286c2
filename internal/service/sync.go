package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"assignment_hub/internal/domain"
)

// SyncService reconciles fetched upstream listings into the store. Each run
// is idempotent per record: already-stored source ids are skipped, so a
// partially completed run is recovered by simply running again.
type SyncService struct {
	source      Source
	assignments AssignmentStore
	clients     ClientStore
	txManager   TransactionManager
	publisher   Publisher
	logger      *slog.Logger
}

func NewSyncService(
	source Source,
	assignments AssignmentStore,
	clients ClientStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		source:      source,
		assignments: assignments,
		clients:     clients,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger.With("source", source.Name()),
	}
}

// Sync fetches the current upstream listings and reconciles them in two
// passes: clients first, then assignments keyed by source id. The first
// store failure aborts the rest of the run; writes already committed stand.
func (s *SyncService) Sync(ctx context.Context) (*domain.SyncStats, error) {
	startTime := time.Now()
	s.logger.Info("starting sync")

	assignments, err := s.source.FetchAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch assignments: %w", err)
	}

	s.logger.Info("fetched assignments from source", "count", len(assignments))

	stats := &domain.SyncStats{Fetched: len(assignments)}

	if err := s.upsertClients(ctx, assignments); err != nil {
		return stats, fmt.Errorf("upsert clients: %w", err)
	}

	existing, err := s.existingSourceIDs(ctx, assignments)
	if err != nil {
		return stats, fmt.Errorf("look up existing assignments: %w", err)
	}

	for i := range assignments {
		assignment := &assignments[i]

		if _, ok := existing[assignment.SourceID]; ok {
			stats.Skipped++
			continue
		}

		if err := s.createAssignment(ctx, assignment); err != nil {
			return stats, fmt.Errorf("create assignment %s: %w", assignment.SourceID, err)
		}
		stats.Created++

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, assignment); err != nil {
				s.logger.Error("publish assignment failed",
					"source_id", assignment.SourceID,
					"error", err,
				)
				stats.Errors++
			} else {
				stats.Published++
			}
		}
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("sync completed",
		"created", stats.Created,
		"skipped", stats.Skipped,
		"published", stats.Published,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	return stats, nil
}

// upsertClients creates every client name seen in the batch that is not yet
// stored. Names are de-duplicated first so a batch full of the same client
// issues one upsert.
func (s *SyncService) upsertClients(ctx context.Context, assignments []domain.Assignment) error {
	seen := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		if _, ok := seen[a.Client.Name]; ok {
			continue
		}
		seen[a.Client.Name] = struct{}{}

		if err := s.clients.UpsertByName(ctx, a.Client.Name); err != nil {
			return fmt.Errorf("client %q: %w", a.Client.Name, err)
		}
	}
	return nil
}

func (s *SyncService) existingSourceIDs(ctx context.Context, assignments []domain.Assignment) (map[string]struct{}, error) {
	if len(assignments) == 0 {
		return map[string]struct{}{}, nil
	}

	sourceIDs := make([]string, len(assignments))
	for i, a := range assignments {
		sourceIDs[i] = a.SourceID
	}

	return s.assignments.ExistingSourceIDs(ctx, sourceIDs)
}

// createAssignment writes one assignment together with its locations inside
// a single transaction. The batch as a whole is deliberately not wrapped.
func (s *SyncService) createAssignment(ctx context.Context, assignment *domain.Assignment) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		id, err := s.assignments.Create(txCtx, assignment)
		if err != nil {
			return err
		}
		assignment.ID = id
		return nil
	})
}
