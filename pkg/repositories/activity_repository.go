package repositories

import (
	"context"
	"fmt"

	"github.com/ekaya-inc/sparkify-etl/pkg/models"
	"github.com/ekaya-inc/sparkify-etl/pkg/sql"
)

// ActivityRepository loads the user and time dimensions and the songplay facts.
type ActivityRepository interface {
	// UpsertUser inserts a user, or updates only its level when the id exists.
	UpsertUser(ctx context.Context, user *models.User) error

	// InsertTime inserts a time row; an existing start_time is left untouched.
	InsertTime(ctx context.Context, rec *models.TimeRecord) error

	// InsertSongplay appends a fact row. There is no deduplication.
	InsertSongplay(ctx context.Context, play *models.Songplay) error
}

type activityRepository struct{}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository() ActivityRepository {
	return &activityRepository{}
}

var _ ActivityRepository = (*activityRepository)(nil)

func (r *activityRepository) UpsertUser(ctx context.Context, user *models.User) error {
	q, err := querier(ctx)
	if err != nil {
		return err
	}

	if _, err := q.Exec(ctx, sql.UserTableInsert, user.Args()...); err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", user.ID, err)
	}
	return nil
}

func (r *activityRepository) InsertTime(ctx context.Context, rec *models.TimeRecord) error {
	q, err := querier(ctx)
	if err != nil {
		return err
	}

	if _, err := q.Exec(ctx, sql.TimeTableInsert, rec.Args()...); err != nil {
		return fmt.Errorf("failed to insert time %s: %w", rec.StartTime, err)
	}
	return nil
}

func (r *activityRepository) InsertSongplay(ctx context.Context, play *models.Songplay) error {
	q, err := querier(ctx)
	if err != nil {
		return err
	}

	if _, err := q.Exec(ctx, sql.SongplayTableInsert, play.Args()...); err != nil {
		return fmt.Errorf("failed to insert songplay for user %d: %w", play.UserID, err)
	}
	return nil
}
