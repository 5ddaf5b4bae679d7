package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sparkify-etl/pkg/models"
	"github.com/ekaya-inc/sparkify-etl/pkg/repositories"
)

type logFileProcessor struct {
	songRepo     repositories.SongRepository
	activityRepo repositories.ActivityRepository
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewLogFileProcessor creates the processor for activity-log files.
func NewLogFileProcessor(
	songRepo repositories.SongRepository,
	activityRepo repositories.ActivityRepository,
	logger *zap.Logger,
) FileProcessor {
	return &logFileProcessor{
		songRepo:     songRepo,
		activityRepo: activityRepo,
		validate:     newRecordValidator(),
		logger:       logger.Named("log-file"),
	}
}

var _ FileProcessor = (*logFileProcessor)(nil)

func (p *logFileProcessor) Kind() models.FileKind {
	return models.FileKindLog
}

// ProcessFile loads the NextSong events of one log file: a time row per event,
// one user row per distinct userId (first seen wins), then a songplay per event.
func (p *logFileProcessor) ProcessFile(ctx context.Context, path string) (models.RowCounts, error) {
	var counts models.RowCounts

	events, err := readLogEvents(path)
	if err != nil {
		return counts, err
	}

	plays := filterNextSong(events)
	for _, e := range plays {
		if err := p.validateEvent(e); err != nil {
			return counts, fmt.Errorf("invalid event in %s: %w", path, err)
		}
	}

	for _, e := range plays {
		if err := p.activityRepo.InsertTime(ctx, models.NewTimeRecord(e.TS)); err != nil {
			return counts, fmt.Errorf("failed to load time: %w", err)
		}
		counts.Times++
	}

	for _, user := range distinctUsers(plays) {
		if err := p.activityRepo.UpsertUser(ctx, user); err != nil {
			return counts, fmt.Errorf("failed to load user: %w", err)
		}
		counts.Users++
	}

	for _, e := range plays {
		songID, artistID, err := p.songRepo.FindSongAndArtist(ctx, e.Song, e.Artist, e.Length)
		if err != nil {
			return counts, fmt.Errorf("failed to resolve song: %w", err)
		}
		if songID != nil {
			counts.LookupHits++
		} else {
			counts.LookupMisses++
		}

		if err := p.activityRepo.InsertSongplay(ctx, e.Songplay(songID, artistID)); err != nil {
			return counts, fmt.Errorf("failed to load songplay: %w", err)
		}
		counts.Songplays++
	}

	p.logger.Debug("Loaded log file",
		zap.String("path", path),
		zap.Int("events", len(events)),
		zap.Int("next_song_events", len(plays)),
		zap.Int("users", counts.Users),
		zap.Int("lookup_hits", counts.LookupHits))

	return counts, nil
}

func (p *logFileProcessor) validateEvent(e *models.LogEvent) error {
	if err := checkRequired(p.validate, e); err != nil {
		return fmt.Errorf("%w (event ts=%d)", err, e.TS)
	}
	return nil
}

// filterNextSong keeps only song-play events, in file order.
func filterNextSong(events []*models.LogEvent) []*models.LogEvent {
	plays := make([]*models.LogEvent, 0, len(events))
	for _, e := range events {
		if e.IsNextSong() {
			plays = append(plays, e)
		}
	}
	return plays
}

// distinctUsers returns one user per userId, keeping the first event seen.
func distinctUsers(events []*models.LogEvent) []*models.User {
	seen := make(map[int64]struct{}, len(events))
	users := make([]*models.User, 0)
	for _, e := range events {
		if _, ok := seen[e.UserID.Int64]; ok {
			continue
		}
		seen[e.UserID.Int64] = struct{}{}
		users = append(users, e.User())
	}
	return users
}
