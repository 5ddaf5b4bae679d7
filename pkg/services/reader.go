package services

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/ekaya-inc/sparkify-etl/pkg/apperrors"
	"github.com/ekaya-inc/sparkify-etl/pkg/models"
)

// maxLineBytes bounds a single JSON-Lines record.
const maxLineBytes = 4 * 1024 * 1024

// readSongRecord decodes the first JSON object of a song file. Any further
// objects are ignored; a file without one fails with ErrEmptySongFile and a
// record lacking song_id or artist_id with ErrMissingRequiredField.
func readSongRecord(path string, v *validator.Validate) (*models.SongRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var rec models.SongRecord
	if err := json.NewDecoder(f).Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &apperrors.ParseError{Path: path, Err: apperrors.ErrEmptySongFile}
		}
		return nil, &apperrors.ParseError{Path: path, Err: err}
	}
	if err := checkRequired(v, &rec); err != nil {
		return nil, &apperrors.ParseError{Path: path, Err: err}
	}
	return &rec, nil
}

// readLogEvents decodes a JSON-Lines activity log. Blank lines are skipped;
// the first malformed line fails the whole file.
func readLogEvents(path string) ([]*models.LogEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var events []*models.LogEvent
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		event := &models.LogEvent{}
		if err := json.Unmarshal(raw, event); err != nil {
			return nil, &apperrors.ParseError{Path: path, Line: line, Err: err}
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, &apperrors.ParseError{Path: path, Line: line + 1, Err: err}
	}

	return events, nil
}
