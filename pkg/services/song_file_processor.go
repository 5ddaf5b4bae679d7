package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sparkify-etl/pkg/models"
	"github.com/ekaya-inc/sparkify-etl/pkg/repositories"
)

type songFileProcessor struct {
	songRepo repositories.SongRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewSongFileProcessor creates the processor for song-metadata files.
func NewSongFileProcessor(songRepo repositories.SongRepository, logger *zap.Logger) FileProcessor {
	return &songFileProcessor{
		songRepo: songRepo,
		validate: newRecordValidator(),
		logger:   logger.Named("song-file"),
	}
}

var _ FileProcessor = (*songFileProcessor)(nil)

func (p *songFileProcessor) Kind() models.FileKind {
	return models.FileKindSong
}

// ProcessFile inserts exactly one song and one artist, song first.
func (p *songFileProcessor) ProcessFile(ctx context.Context, path string) (models.RowCounts, error) {
	var counts models.RowCounts

	rec, err := readSongRecord(path, p.validate)
	if err != nil {
		return counts, err
	}

	song := rec.Song()
	if err := p.songRepo.InsertSong(ctx, song); err != nil {
		return counts, fmt.Errorf("failed to load song: %w", err)
	}
	counts.Songs++

	artist := rec.Artist()
	if err := p.songRepo.InsertArtist(ctx, artist); err != nil {
		return counts, fmt.Errorf("failed to load artist: %w", err)
	}
	counts.Artists++

	p.logger.Debug("Loaded song file",
		zap.String("path", path),
		zap.String("song_id", song.ID),
		zap.String("artist_id", artist.ID))

	return counts, nil
}
