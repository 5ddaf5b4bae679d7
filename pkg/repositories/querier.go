package repositories

import (
	"context"

	"github.com/ekaya-inc/sparkify-etl/pkg/apperrors"
	"github.com/ekaya-inc/sparkify-etl/pkg/database"
)

// querier returns the transaction of the current unit of work. Repositories never
// open their own transactions: commit boundaries belong to the file-walk driver.
func querier(ctx context.Context) (database.Querier, error) {
	q, ok := database.GetQuerier(ctx)
	if !ok {
		return nil, apperrors.ErrNoTransaction
	}
	return q, nil
}
