package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sparkify-etl/pkg/models"
)

func TestFileWalker_FindFiles_SortedAndFiltered(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "B/b/c.json", "{}")
	writeFile(t, root, "A/z.json", "{}")
	writeFile(t, root, "A/a.json", "{}")
	writeFile(t, root, "A/notes.txt", "x")
	writeFile(t, root, "A/upper.JSON", "{}")
	writeFile(t, root, "C/.ipynb_checkpoints/x.json", "{}")

	walker := NewFileWalker(&fakeTxRunner{}, zap.NewNop())
	files, err := walker.FindFiles(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "A/a.json"),
		filepath.Join(root, "A/z.json"),
		filepath.Join(root, "B/b/c.json"),
		filepath.Join(root, "C/.ipynb_checkpoints/x.json"),
	}, files)
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f))
	}
}

func TestFileWalker_FindFiles_EmptyRoot(t *testing.T) {
	walker := NewFileWalker(&fakeTxRunner{}, zap.NewNop())
	files, err := walker.FindFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileWalker_FindFiles_MissingRoot(t *testing.T) {
	walker := NewFileWalker(&fakeTxRunner{}, zap.NewNop())
	_, err := walker.FindFiles(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to walk")
}

func TestFileWalker_Run_OneTransactionPerFile(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "a.json", "{}")
	b := writeFile(t, root, "b.json", "{}")

	proc := &mockProcessor{kind: models.FileKindSong}
	proc.On("ProcessFile", mock.Anything, a).Return(models.RowCounts{Songs: 1, Artists: 1}, nil).Once()
	proc.On("ProcessFile", mock.Anything, b).Return(models.RowCounts{Songs: 1, Artists: 1}, nil).Once()

	tx := &fakeTxRunner{}
	walker := NewFileWalker(tx, zap.NewNop())
	result, err := walker.Run(context.Background(), root, proc)

	require.NoError(t, err)
	assert.Equal(t, 2, tx.begun)
	assert.Equal(t, 2, tx.committed)
	assert.Equal(t, models.FileKindSong, result.Kind)
	assert.Equal(t, 2, result.FilesFound)
	assert.Equal(t, 2, result.FilesProcessed)
	assert.Equal(t, models.RowCounts{Songs: 2, Artists: 2}, result.Rows)
	proc.AssertExpectations(t)
}

func TestFileWalker_Run_StopsAtFirstFailure(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "a.json", "{}")
	b := writeFile(t, root, "b.json", "{}")
	c := writeFile(t, root, "c.json", "{}")

	proc := &mockProcessor{kind: models.FileKindLog}
	proc.On("ProcessFile", mock.Anything, a).Return(models.RowCounts{Songplays: 3}, nil)
	proc.On("ProcessFile", mock.Anything, b).Return(models.RowCounts{}, errors.New("bad row"))

	tx := &fakeTxRunner{}
	walker := NewFileWalker(tx, zap.NewNop())
	result, err := walker.Run(context.Background(), root, proc)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process "+b)
	assert.Contains(t, err.Error(), "bad row")
	assert.Equal(t, 2, tx.begun)
	assert.Equal(t, 1, tx.committed)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.FilesFound)
	assert.Equal(t, 1, result.FilesProcessed)
	assert.Equal(t, 3, result.Rows.Songplays)
	proc.AssertNotCalled(t, "ProcessFile", mock.Anything, c)
}

func TestFileWalker_Run_NoFiles(t *testing.T) {
	proc := &mockProcessor{kind: models.FileKindSong}
	tx := &fakeTxRunner{}
	walker := NewFileWalker(tx, zap.NewNop())

	result, err := walker.Run(context.Background(), t.TempDir(), proc)

	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesFound)
	assert.Equal(t, 0, tx.begun)
}
