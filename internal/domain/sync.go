package domain

import "time"

// SyncStats holds statistics about a single sync run.
type SyncStats struct {
	Fetched   int
	Created   int
	Skipped   int
	Published int
	Errors    int
	Duration  time.Duration
}
