package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Assignment is a consultancy job listing synced from the upstream source.
// SourceID is the upstream system's identifier and the de-duplication key:
// the store holds at most one assignment per distinct SourceID.
type Assignment struct {
	ID           int64
	SourceID     string
	Title        string
	StartDate    time.Time
	EndDate      time.Time
	HoursPerWeek int
	Level        string // free-form, observed "JUNIOR"/"MEDIOR"/"SENIOR"
	Client       LegalEntityClient
	Locations    []Location
	CreatedAt    time.Time
}

// LegalEntityClient is the client a listing belongs to, keyed by name.
// Created lazily on first sight of a new name, never updated afterwards.
type LegalEntityClient struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Location is owned by exactly one assignment. Position preserves the
// upstream list order for display.
type Location struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	City     string `db:"city"`
	Country  string `db:"country"`
	Position int    `db:"position"`
}

// Application is a visitor's submission against a single assignment.
type Application struct {
	ID           int64
	AssignmentID int64
	Name         string
	Email        string
	Phone        string
	Message      string
	CreatedAt    time.Time
}
