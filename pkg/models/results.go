package models

import (
	"time"

	"github.com/google/uuid"
)

// FileKind names the category of source file a pass loads.
type FileKind string

const (
	FileKindSong FileKind = "song"
	FileKindLog  FileKind = "log"
)

// RowCounts tallies the statements attempted per table. Attempts are not
// insertions: conflict-ignored rows are still counted.
type RowCounts struct {
	Songs     int `json:"songs"`
	Artists   int `json:"artists"`
	Users     int `json:"users"`
	Times     int `json:"times"`
	Songplays int `json:"songplays"`

	LookupHits   int `json:"lookup_hits"`
	LookupMisses int `json:"lookup_misses"`
}

// Add accumulates other into c.
func (c *RowCounts) Add(other RowCounts) {
	c.Songs += other.Songs
	c.Artists += other.Artists
	c.Users += other.Users
	c.Times += other.Times
	c.Songplays += other.Songplays
	c.LookupHits += other.LookupHits
	c.LookupMisses += other.LookupMisses
}

// PassResult describes one file-walk pass.
type PassResult struct {
	Kind           FileKind      `json:"kind"`
	Root           string        `json:"root"`
	FilesFound     int           `json:"files_found"`
	FilesProcessed int           `json:"files_processed"`
	Rows           RowCounts     `json:"rows"`
	Duration       time.Duration `json:"duration"`
}

// RunSummary describes a complete run: the song pass followed by the log pass.
type RunSummary struct {
	RunID     uuid.UUID     `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Passes    []*PassResult `json:"passes"`
}

// Totals sums the row counts of every pass.
func (s *RunSummary) Totals() RowCounts {
	var total RowCounts
	for _, p := range s.Passes {
		total.Add(p.Rows)
	}
	return total
}
