package verama

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"assignment_hub/internal/domain"
)

const (
	SourceName     = "Verama"
	DefaultBaseURL = "https://app.verama.com/api/public/job-requests"

	dateLayout = "2006-01-02"
)

// Config holds Verama source configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Source fetches and validates listings from the Verama public API.
// No retry is performed here; a failed run simply waits for the next
// scheduler tick.
type Source struct {
	httpClient *http.Client
	baseURL    string
	validate   *validator.Validate
	logger     *slog.Logger
}

// New creates a new Verama source.
func New(cfg Config, logger *slog.Logger) *Source {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  baseURL,
		validate: validator.New(),
		logger:   logger.With("source", "verama"),
	}
}

// Name returns the human-readable source name.
func (s *Source) Name() string {
	return SourceName
}

// FetchValidated performs one upstream call and returns the validated
// payload in its wire shape, numeric ids intact. This is the read path the
// passthrough proxy relays verbatim.
func (s *Source) FetchValidated(ctx context.Context) (*JobRequestResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamUnreachableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamUnavailableError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	var payload JobRequestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, newSchemaViolation(err)
	}

	if err := s.Validate(&payload); err != nil {
		return nil, err
	}

	s.logger.Debug("fetched job requests", "count", len(payload.Content))

	return &payload, nil
}

// FetchAssignments fetches the upstream payload and transforms it to domain
// form, coercing the numeric upstream id into the string SourceID used for
// de-duplication.
func (s *Source) FetchAssignments(ctx context.Context) ([]domain.Assignment, error) {
	payload, err := s.FetchValidated(ctx)
	if err != nil {
		return nil, err
	}
	return s.transform(payload.Content)
}

// Validate checks a decoded payload against the expected schema. Pure, no
// I/O; exported so callers holding raw payloads can validate independently.
func (s *Source) Validate(payload *JobRequestResponse) error {
	if err := s.validate.Struct(payload); err != nil {
		return newSchemaViolation(err)
	}
	return nil
}

func (s *Source) transform(requests []JobRequest) ([]domain.Assignment, error) {
	assignments := make([]domain.Assignment, 0, len(requests))

	for i, r := range requests {
		startDate, err := parseDate(*r.StartDate)
		if err != nil {
			return nil, &SchemaViolationError{Fields: []string{fmt.Sprintf("content[%d].startDate", i)}}
		}
		endDate, err := parseDate(*r.EndDate)
		if err != nil {
			return nil, &SchemaViolationError{Fields: []string{fmt.Sprintf("content[%d].endDate", i)}}
		}

		a := domain.Assignment{
			SourceID:     fmt.Sprintf("%d", *r.ID),
			Title:        *r.Title,
			StartDate:    startDate,
			EndDate:      endDate,
			HoursPerWeek: *r.HoursPerWeek,
			Level:        *r.Level,
			Client: domain.LegalEntityClient{
				Name: *r.LegalEntityClient.Name,
			},
		}

		for pos, loc := range r.Locations {
			a.Locations = append(a.Locations, domain.Location{
				Name:     *loc.Name,
				City:     *loc.City,
				Country:  *loc.Country,
				Position: pos,
			})
		}

		assignments = append(assignments, a)
	}

	return assignments, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
