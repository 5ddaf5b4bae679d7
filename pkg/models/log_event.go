package models

import (
	"time"

	"github.com/ekaya-inc/sparkify-etl/pkg/jsonutil"
)

// NextSongPage is the page value of events that represent a song being played.
const NextSongPage = "NextSong"

// LogEvent is one line of an activity-log file.
// Fields tagged required must be present on every NextSong event. A zero ts
// counts as absent.
type LogEvent struct {
	Artist        *string                `json:"artist"`
	Auth          string                 `json:"auth"`
	FirstName     *string                `json:"firstName"`
	Gender        *string                `json:"gender"`
	ItemInSession int                    `json:"itemInSession"`
	LastName      *string                `json:"lastName"`
	Length        *float64               `json:"length"`
	Level         *string                `json:"level"`
	Location      *string                `json:"location" validate:"required"`
	Method        string                 `json:"method"`
	Page          string                 `json:"page"`
	Registration  *float64               `json:"registration"`
	SessionID     jsonutil.FlexibleInt64 `json:"sessionId" validate:"required"`
	Song          *string                `json:"song"`
	Status        int                    `json:"status"`
	TS            int64                  `json:"ts" validate:"required"`
	UserAgent     *string                `json:"userAgent" validate:"required"`
	UserID        jsonutil.FlexibleInt64 `json:"userId" validate:"required"`
}

// IsNextSong reports whether the event is a song play.
func (e *LogEvent) IsNextSong() bool {
	return e.Page == NextSongPage
}

// StartTime converts the epoch-millisecond timestamp to a UTC instant.
func (e *LogEvent) StartTime() time.Time {
	return time.UnixMilli(e.TS).UTC()
}

// User projects the event onto the users dimension.
func (e *LogEvent) User() *User {
	return &User{
		ID:        e.UserID.Int64,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Gender:    e.Gender,
		Level:     e.Level,
	}
}

// Songplay builds the fact row for the event with the resolved references.
func (e *LogEvent) Songplay(songID, artistID *string) *Songplay {
	return &Songplay{
		StartTime: e.StartTime(),
		UserID:    e.UserID.Int64,
		Level:     e.Level,
		SongID:    songID,
		ArtistID:  artistID,
		SessionID: e.SessionID.Int64,
		Location:  e.Location,
		UserAgent: e.UserAgent,
	}
}

// TimeRecord is a row of the times dimension, derived entirely from StartTime.
type TimeRecord struct {
	StartTime time.Time
	Hour      int
	Day       int
	Week      int
	Month     int
	Year      int
	Weekday   string
}

// NewTimeRecord breaks an epoch-millisecond timestamp into its UTC calendar parts.
// Week is the ISO 8601 week number.
func NewTimeRecord(tsMillis int64) *TimeRecord {
	t := time.UnixMilli(tsMillis).UTC()
	_, week := t.ISOWeek()
	return &TimeRecord{
		StartTime: t,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
		Weekday:   t.Weekday().String(),
	}
}

// Args returns the times insert tuple: start_time, hour, day, week, month, year, weekday.
func (r *TimeRecord) Args() []any {
	return []any{r.StartTime, r.Hour, r.Day, r.Week, r.Month, r.Year, r.Weekday}
}

// Songplay is a row of the songplays fact table. SongID and ArtistID are nil
// when the lookup found no match.
type Songplay struct {
	StartTime time.Time
	UserID    int64
	Level     *string
	SongID    *string
	ArtistID  *string
	SessionID int64
	Location  *string
	UserAgent *string
}

// Args returns the songplays insert tuple: start_time, user_id, level, song_id,
// artist_id, session_id, location, user_agent.
func (p *Songplay) Args() []any {
	return []any{p.StartTime, p.UserID, p.Level, p.SongID, p.ArtistID, p.SessionID, p.Location, p.UserAgent}
}
