package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/sparkify-etl/pkg/models"
)

// SourceFileExt is the extension of every source file, matched case-sensitively.
const SourceFileExt = ".json"

// FileWalker discovers source files under a root and loads them one unit of work per file.
type FileWalker interface {
	// FindFiles returns the absolute paths of every .json file under root, sorted.
	FindFiles(root string) ([]string, error)

	// Run applies proc to every file under root in FindFiles order, committing after
	// each file. The first failure stops the pass; files already committed stay loaded.
	Run(ctx context.Context, root string, proc FileProcessor) (*models.PassResult, error)
}

type fileWalker struct {
	tx     TxRunner
	logger *zap.Logger
}

// NewFileWalker creates a file walker committing through tx.
func NewFileWalker(tx TxRunner, logger *zap.Logger) FileWalker {
	return &fileWalker{
		tx:     tx,
		logger: logger.Named("file-walker"),
	}
}

var _ FileWalker = (*fileWalker)(nil)

func (w *fileWalker) FindFiles(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == SourceFileExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

func (w *fileWalker) Run(ctx context.Context, root string, proc FileProcessor) (*models.PassResult, error) {
	start := time.Now()
	result := &models.PassResult{Kind: proc.Kind(), Root: root}

	files, err := w.FindFiles(root)
	if err != nil {
		return result, err
	}

	result.FilesFound = len(files)
	w.logger.Info("Files found",
		zap.String("kind", string(result.Kind)),
		zap.String("root", root),
		zap.Int("count", len(files)))

	for _, path := range files {
		var counts models.RowCounts
		err := w.tx.WithTx(ctx, func(ctx context.Context) error {
			var err error
			counts, err = proc.ProcessFile(ctx, path)
			return err
		})
		if err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("failed to process %s: %w", path, err)
		}

		result.FilesProcessed++
		result.Rows.Add(counts)
		w.logger.Info("Files processed",
			zap.String("kind", string(result.Kind)),
			zap.Int("processed", result.FilesProcessed),
			zap.Int("total", result.FilesFound),
			zap.String("file", path))
	}

	result.Duration = time.Since(start)
	return result, nil
}
