package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ekaya-inc/sparkify-etl/pkg/models"
	"github.com/ekaya-inc/sparkify-etl/pkg/sql"
)

// SongRepository loads the song and artist dimensions and resolves plays against them.
type SongRepository interface {
	// InsertSong inserts a song; an existing id is left untouched.
	InsertSong(ctx context.Context, song *models.Song) error

	// InsertArtist inserts an artist; an existing id is left untouched.
	InsertArtist(ctx context.Context, artist *models.Artist) error

	// FindSongAndArtist matches on exact title, artist name and duration.
	// A miss returns nil ids and no error.
	FindSongAndArtist(ctx context.Context, title, artistName *string, duration *float64) (songID, artistID *string, err error)
}

type songRepository struct{}

// NewSongRepository creates a new song repository.
func NewSongRepository() SongRepository {
	return &songRepository{}
}

var _ SongRepository = (*songRepository)(nil)

func (r *songRepository) InsertSong(ctx context.Context, song *models.Song) error {
	q, err := querier(ctx)
	if err != nil {
		return err
	}

	if _, err := q.Exec(ctx, sql.SongTableInsert, song.Args()...); err != nil {
		return fmt.Errorf("failed to insert song %s: %w", song.ID, err)
	}
	return nil
}

func (r *songRepository) InsertArtist(ctx context.Context, artist *models.Artist) error {
	q, err := querier(ctx)
	if err != nil {
		return err
	}

	if _, err := q.Exec(ctx, sql.ArtistTableInsert, artist.Args()...); err != nil {
		return fmt.Errorf("failed to insert artist %s: %w", artist.ID, err)
	}
	return nil
}

func (r *songRepository) FindSongAndArtist(ctx context.Context, title, artistName *string, duration *float64) (*string, *string, error) {
	q, err := querier(ctx)
	if err != nil {
		return nil, nil, err
	}

	var songID, artistID *string
	err = q.QueryRow(ctx, sql.SongSelect, title, artistName, duration).Scan(&songID, &artistID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up song: %w", err)
	}
	return songID, artistID, nil
}
