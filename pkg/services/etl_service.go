package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sparkify-etl/pkg/models"
)

// Sources names the two source roots of a run.
type Sources struct {
	SongDir string
	LogDir  string
}

// ETLService runs a complete load: the song pass, then the log pass.
type ETLService interface {
	Run(ctx context.Context) (*models.RunSummary, error)
}

type etlService struct {
	walker  FileWalker
	songs   FileProcessor
	logs    FileProcessor
	sources Sources
	logger  *zap.Logger
}

// NewETLService creates the run orchestrator. The song processor always runs
// first: songplay lookups only resolve against songs and artists already loaded.
func NewETLService(
	walker FileWalker,
	songs FileProcessor,
	logs FileProcessor,
	sources Sources,
	logger *zap.Logger,
) ETLService {
	return &etlService{
		walker:  walker,
		songs:   songs,
		logs:    logs,
		sources: sources,
		logger:  logger,
	}
}

// Run stops at the first failing pass. The returned summary covers the passes
// that ran, including the partial one.
func (s *etlService) Run(ctx context.Context) (*models.RunSummary, error) {
	summary := &models.RunSummary{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}
	logger := s.logger.With(zap.String("run_id", summary.RunID.String()))

	passes := []struct {
		proc FileProcessor
		root string
	}{
		{s.songs, s.sources.SongDir},
		{s.logs, s.sources.LogDir},
	}

	for _, pass := range passes {
		result, err := s.walker.Run(ctx, pass.root, pass.proc)
		if result != nil {
			summary.Passes = append(summary.Passes, result)
		}
		if err != nil {
			return summary, fmt.Errorf("%s pass failed: %w", pass.proc.Kind(), err)
		}

		logger.Info("Pass complete",
			zap.String("kind", string(result.Kind)),
			zap.Int("files", result.FilesProcessed),
			zap.Int("songs", result.Rows.Songs),
			zap.Int("artists", result.Rows.Artists),
			zap.Int("users", result.Rows.Users),
			zap.Int("times", result.Rows.Times),
			zap.Int("songplays", result.Rows.Songplays),
			zap.Int("lookup_hits", result.Rows.LookupHits),
			zap.Int("lookup_misses", result.Rows.LookupMisses),
			zap.Duration("duration", result.Duration))
	}

	return summary, nil
}
