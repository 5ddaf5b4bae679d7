package services

import (
	"context"

	"github.com/ekaya-inc/sparkify-etl/pkg/models"
)

// FileProcessor transforms one source file and loads its rows through the
// repositories. It runs inside the unit of work opened by the file walker and
// must not commit.
type FileProcessor interface {
	// Kind names the file category this processor understands.
	Kind() models.FileKind

	// ProcessFile loads one file and returns the statements it attempted per table.
	ProcessFile(ctx context.Context, path string) (models.RowCounts, error)
}

// TxRunner opens one transaction per call, committing when fn succeeds.
// *database.DB satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
