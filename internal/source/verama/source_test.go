package verama

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"content": [
		{
			"id": 1,
			"systemId": "JR-1",
			"title": "X",
			"startDate": "2025-01-01",
			"endDate": "2025-02-01",
			"locations": [
				{"name": "Stockholm, Sverige", "city": "Stockholm", "country": "Sverige"}
			],
			"hoursPerWeek": 40,
			"level": "SENIOR",
			"legalEntityClient": {"name": "Acme"}
		}
	]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, testLogger())
}

func serveJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestFetchAssignments_TransformsPayload(t *testing.T) {
	var gotContentType string
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		serveJSON(http.StatusOK, samplePayload)(w, r)
	})

	assignments, err := src.FetchAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	assert.Equal(t, "application/json", gotContentType)

	a := assignments[0]
	assert.Equal(t, "1", a.SourceID) // numeric upstream id coerced to string
	assert.Equal(t, "X", a.Title)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), a.StartDate)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), a.EndDate)
	assert.Equal(t, 40, a.HoursPerWeek)
	assert.Equal(t, "SENIOR", a.Level)
	assert.Equal(t, "Acme", a.Client.Name)
	require.Len(t, a.Locations, 1)
	assert.Equal(t, "Stockholm, Sverige", a.Locations[0].Name)
	assert.Equal(t, 0, a.Locations[0].Position)
}

func TestFetchValidated_KeepsNumericID(t *testing.T) {
	src := newTestSource(t, serveJSON(http.StatusOK, samplePayload))

	payload, err := src.FetchValidated(context.Background())
	require.NoError(t, err)
	require.Len(t, payload.Content, 1)

	require.NotNil(t, payload.Content[0].ID)
	assert.Equal(t, int64(1), *payload.Content[0].ID)
}

func TestFetchValidated_LocationOrderPreserved(t *testing.T) {
	body := `{"content":[{
		"id": 2, "systemId": "JR-2", "title": "Y",
		"startDate": "2025-01-01", "endDate": "2025-02-01",
		"locations": [
			{"name": "Göteborg, Sverige", "city": "Göteborg", "country": "Sverige"},
			{"name": "Malmö, Sverige", "city": "Malmö", "country": "Sverige"}
		],
		"hoursPerWeek": 38, "level": "MEDIOR",
		"legalEntityClient": {"name": "Globex"}
	}]}`
	src := newTestSource(t, serveJSON(http.StatusOK, body))

	assignments, err := src.FetchAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Len(t, assignments[0].Locations, 2)
	assert.Equal(t, "Göteborg", assignments[0].Locations[0].City)
	assert.Equal(t, 0, assignments[0].Locations[0].Position)
	assert.Equal(t, "Malmö", assignments[0].Locations[1].City)
	assert.Equal(t, 1, assignments[0].Locations[1].Position)
}

func TestFetchValidated_EmptyLocationsAllowed(t *testing.T) {
	body := `{"content":[{
		"id": 3, "systemId": "JR-3", "title": "Z",
		"startDate": "2025-01-01", "endDate": "2025-02-01",
		"locations": [],
		"hoursPerWeek": 40, "level": "JUNIOR",
		"legalEntityClient": {"name": "Acme"}
	}]}`
	src := newTestSource(t, serveJSON(http.StatusOK, body))

	payload, err := src.FetchValidated(context.Background())
	require.NoError(t, err)
	require.Len(t, payload.Content, 1)
	assert.Empty(t, payload.Content[0].Locations)
}

func TestFetchValidated_EmptyContentAllowed(t *testing.T) {
	src := newTestSource(t, serveJSON(http.StatusOK, `{"content":[]}`))

	payload, err := src.FetchValidated(context.Background())
	require.NoError(t, err)
	assert.Empty(t, payload.Content)
}

func TestFetchValidated_MissingContentRejected(t *testing.T) {
	src := newTestSource(t, serveJSON(http.StatusOK, `{"items":[]}`))

	_, err := src.FetchValidated(context.Background())

	var schemaErr *SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Error(), "Content")
}

func TestFetchValidated_MissingHoursPerWeekRejected(t *testing.T) {
	body := `{"content":[{
		"id": 1, "systemId": "JR-1", "title": "X",
		"startDate": "2025-01-01", "endDate": "2025-02-01",
		"locations": [],
		"level": "SENIOR",
		"legalEntityClient": {"name": "Acme"}
	}]}`
	src := newTestSource(t, serveJSON(http.StatusOK, body))

	_, err := src.FetchValidated(context.Background())

	var schemaErr *SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Error(), "HoursPerWeek")
}

func TestFetchValidated_MissingLocationsRejected(t *testing.T) {
	body := `{"content":[{
		"id": 1, "systemId": "JR-1", "title": "X",
		"startDate": "2025-01-01", "endDate": "2025-02-01",
		"hoursPerWeek": 40, "level": "SENIOR",
		"legalEntityClient": {"name": "Acme"}
	}]}`
	src := newTestSource(t, serveJSON(http.StatusOK, body))

	_, err := src.FetchValidated(context.Background())

	var schemaErr *SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Error(), "Locations")
}

func TestFetchValidated_MistypedFieldRejected(t *testing.T) {
	body := `{"content":[{
		"id": "not-a-number", "systemId": "JR-1", "title": "X",
		"startDate": "2025-01-01", "endDate": "2025-02-01",
		"locations": [], "hoursPerWeek": 40, "level": "SENIOR",
		"legalEntityClient": {"name": "Acme"}
	}]}`
	src := newTestSource(t, serveJSON(http.StatusOK, body))

	_, err := src.FetchValidated(context.Background())

	var schemaErr *SchemaViolationError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestFetchAssignments_UnparsableDateRejected(t *testing.T) {
	body := `{"content":[{
		"id": 1, "systemId": "JR-1", "title": "X",
		"startDate": "snart", "endDate": "2025-02-01",
		"locations": [], "hoursPerWeek": 40, "level": "SENIOR",
		"legalEntityClient": {"name": "Acme"}
	}]}`
	src := newTestSource(t, serveJSON(http.StatusOK, body))

	_, err := src.FetchAssignments(context.Background())

	var schemaErr *SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Error(), "content[0].startDate")
}

func TestFetchValidated_Non2xxIsUnavailable(t *testing.T) {
	src := newTestSource(t, serveJSON(http.StatusBadGateway, "bad gateway"))

	_, err := src.FetchValidated(context.Background())

	var unavailable *UpstreamUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, http.StatusBadGateway, unavailable.StatusCode)
}

func TestFetchValidated_TransportFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(serveJSON(http.StatusOK, samplePayload))
	url := srv.URL
	srv.Close()

	src := New(Config{BaseURL: url, Timeout: time.Second}, testLogger())

	_, err := src.FetchValidated(context.Background())

	var unreachable *UpstreamUnreachableError
	assert.ErrorAs(t, err, &unreachable)
}

func TestNew_DefaultBaseURL(t *testing.T) {
	src := New(Config{Timeout: time.Second}, testLogger())
	assert.Equal(t, DefaultBaseURL, src.baseURL)
}
