package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSummary_Totals(t *testing.T) {
	summary := &RunSummary{Passes: []*PassResult{
		{Kind: FileKindSong, Rows: RowCounts{Songs: 3, Artists: 3}},
		{Kind: FileKindLog, Rows: RowCounts{Users: 2, Times: 5, Songplays: 5, LookupHits: 1, LookupMisses: 4}},
	}}

	assert.Equal(t, RowCounts{
		Songs: 3, Artists: 3, Users: 2, Times: 5, Songplays: 5, LookupHits: 1, LookupMisses: 4,
	}, summary.Totals())
}
