package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"assignment_hub/internal/domain"
)

type AssignmentStore struct {
	db *sqlx.DB
}

func NewAssignmentStore(db *sqlx.DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

// ExistingSourceIDs returns which of the given source ids already have a
// stored assignment.
func (s *AssignmentStore) ExistingSourceIDs(ctx context.Context, sourceIDs []string) (map[string]struct{}, error) {
	result := make(map[string]struct{}, len(sourceIDs))
	if len(sourceIDs) == 0 {
		return result, nil
	}

	exec := GetExecutor(ctx, s.db)
	rows, err := exec.QueryContext(ctx,
		"SELECT source_id FROM assignments WHERE source_id = ANY($1)",
		pq.Array(sourceIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sourceID string
		if err := rows.Scan(&sourceID); err != nil {
			return nil, err
		}
		result[sourceID] = struct{}{}
	}

	return result, rows.Err()
}

// Create inserts the assignment, its client link resolved by name, and its
// location rows in upstream order. The caller decides the transaction
// boundary via the context.
func (s *AssignmentStore) Create(ctx context.Context, assignment *domain.Assignment) (int64, error) {
	exec := GetExecutor(ctx, s.db)

	var clientID int64
	err := exec.QueryRowxContext(ctx,
		"SELECT id FROM legal_entity_clients WHERE name = $1",
		assignment.Client.Name,
	).Scan(&clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("client %q: %w", assignment.Client.Name, domain.ErrNotFound)
		}
		return 0, err
	}

	var id int64
	err = exec.QueryRowxContext(ctx,
		`INSERT INTO assignments (source_id, title, start_date, end_date, hours_per_week, level, legal_entity_client_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		assignment.SourceID,
		assignment.Title,
		assignment.StartDate,
		assignment.EndDate,
		assignment.HoursPerWeek,
		assignment.Level,
		clientID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	for pos, loc := range assignment.Locations {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO locations (assignment_id, name, city, country, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, loc.Name, loc.City, loc.Country, pos,
		)
		if err != nil {
			return 0, fmt.Errorf("location %d: %w", pos, err)
		}
	}

	assignment.Client.ID = clientID
	return id, nil
}

// List returns every stored assignment with its client and its locations in
// display order.
func (s *AssignmentStore) List(ctx context.Context) ([]domain.Assignment, error) {
	exec := GetExecutor(ctx, s.db)

	rows, err := exec.QueryxContext(ctx,
		`SELECT a.id, a.source_id, a.title, a.start_date, a.end_date,
		        a.hours_per_week, a.level, c.id AS client_id, c.name AS client_name
		 FROM assignments a
		 JOIN legal_entity_clients c ON c.id = a.legal_entity_client_id
		 ORDER BY a.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.Assignment
	index := make(map[int64]int)

	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		index[a.ID] = len(assignments)
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(assignments) == 0 {
		return assignments, nil
	}

	ids := make([]int64, len(assignments))
	for i, a := range assignments {
		ids[i] = a.ID
	}

	locRows, err := exec.QueryContext(ctx,
		`SELECT assignment_id, name, city, country, position
		 FROM locations
		 WHERE assignment_id = ANY($1)
		 ORDER BY assignment_id, position`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	defer locRows.Close()

	for locRows.Next() {
		var assignmentID int64
		var loc domain.Location
		if err := locRows.Scan(&assignmentID, &loc.Name, &loc.City, &loc.Country, &loc.Position); err != nil {
			return nil, err
		}
		i := index[assignmentID]
		assignments[i].Locations = append(assignments[i].Locations, loc)
	}

	return assignments, locRows.Err()
}

// GetByID returns one assignment with its client and locations, or
// domain.ErrNotFound.
func (s *AssignmentStore) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	exec := GetExecutor(ctx, s.db)

	row := exec.QueryRowxContext(ctx,
		`SELECT a.id, a.source_id, a.title, a.start_date, a.end_date,
		        a.hours_per_week, a.level, c.id AS client_id, c.name AS client_name
		 FROM assignments a
		 JOIN legal_entity_clients c ON c.id = a.legal_entity_client_id
		 WHERE a.id = $1`,
		id,
	)

	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	locRows, err := exec.QueryContext(ctx,
		`SELECT name, city, country, position
		 FROM locations
		 WHERE assignment_id = $1
		 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer locRows.Close()

	for locRows.Next() {
		var loc domain.Location
		if err := locRows.Scan(&loc.Name, &loc.City, &loc.Country, &loc.Position); err != nil {
			return nil, err
		}
		a.Locations = append(a.Locations, loc)
	}
	if err := locRows.Err(); err != nil {
		return nil, err
	}

	return &a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (domain.Assignment, error) {
	var a domain.Assignment
	err := row.Scan(
		&a.ID,
		&a.SourceID,
		&a.Title,
		&a.StartDate,
		&a.EndDate,
		&a.HoursPerWeek,
		&a.Level,
		&a.Client.ID,
		&a.Client.Name,
	)
	return a, err
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
