package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"assignment_hub/internal/domain"
)

type ApplicationStore struct {
	db *sqlx.DB
}

func NewApplicationStore(db *sqlx.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// Create stores a visitor application and fills in the generated id and
// timestamp.
func (s *ApplicationStore) Create(ctx context.Context, application *domain.Application) error {
	exec := GetExecutor(ctx, s.db)

	var id int64
	var createdAt time.Time
	err := exec.QueryRowxContext(ctx,
		`INSERT INTO applications (assignment_id, name, email, phone, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		application.AssignmentID,
		application.Name,
		application.Email,
		application.Phone,
		application.Message,
	).Scan(&id, &createdAt)
	if err != nil {
		return err
	}

	application.ID = id
	application.CreatedAt = createdAt
	return nil
}

// ListByAssignment returns applications for one assignment, newest first.
func (s *ApplicationStore) ListByAssignment(ctx context.Context, assignmentID int64) ([]domain.Application, error) {
	exec := GetExecutor(ctx, s.db)

	rows, err := exec.QueryContext(ctx,
		`SELECT id, assignment_id, name, email, phone, message, created_at
		 FROM applications
		 WHERE assignment_id = $1
		 ORDER BY created_at DESC`,
		assignmentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.AssignmentID, &a.Name, &a.Email, &a.Phone, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}

	return applications, rows.Err()
}
