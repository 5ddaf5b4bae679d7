package services

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ekaya-inc/sparkify-etl/pkg/jsonutil"
	"github.com/ekaya-inc/sparkify-etl/pkg/models"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockSongRepo struct {
	mock.Mock
}

func (m *mockSongRepo) InsertSong(ctx context.Context, song *models.Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *mockSongRepo) InsertArtist(ctx context.Context, artist *models.Artist) error {
	args := m.Called(ctx, artist)
	return args.Error(0)
}

func (m *mockSongRepo) FindSongAndArtist(ctx context.Context, title, artistName *string, duration *float64) (*string, *string, error) {
	args := m.Called(ctx, title, artistName, duration)
	var songID, artistID *string
	if v := args.Get(0); v != nil {
		songID = v.(*string)
	}
	if v := args.Get(1); v != nil {
		artistID = v.(*string)
	}
	return songID, artistID, args.Error(2)
}

type mockActivityRepo struct {
	mock.Mock
}

func (m *mockActivityRepo) UpsertUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockActivityRepo) InsertTime(ctx context.Context, rec *models.TimeRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockActivityRepo) InsertSongplay(ctx context.Context, play *models.Songplay) error {
	args := m.Called(ctx, play)
	return args.Error(0)
}

// ============================================================================
// Mock Pipeline Parts
// ============================================================================

type mockProcessor struct {
	mock.Mock
	kind models.FileKind
}

func (m *mockProcessor) Kind() models.FileKind {
	return m.kind
}

func (m *mockProcessor) ProcessFile(ctx context.Context, path string) (models.RowCounts, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(models.RowCounts), args.Error(1)
}

// fakeTxRunner counts units of work and records which ones were committed.
type fakeTxRunner struct {
	begun     int
	committed int
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.begun++
	if err := fn(ctx); err != nil {
		return err
	}
	f.committed++
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func strPtr(s string) *string { return &s }

func jsonFlex(v int64) jsonutil.FlexibleInt64 { return jsonutil.NewFlexibleInt64(v) }

// writeFile creates dir/name (and parents) with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

const songFixture = `{"num_songs": 1, "artist_id": "ARD7TVE1187B99BFB1", "artist_latitude": null, ` +
	`"artist_longitude": null, "artist_location": "California - LA", "artist_name": "Casual", ` +
	`"song_id": "SOMZWCG12A8C13C480", "title": "I Didn't Mean To", "duration": 218.93179, "year": 0}`

// logLine renders one activity-log event. An empty song leaves song,
// artist and length null, as on non-song pages.
func logLine(page, userID, level, song, artist string, length float64, ts int64) string {
	songField, artistField, lengthField := "null", "null", "null"
	if song != "" {
		songField = strconv.Quote(song)
		artistField = strconv.Quote(artist)
		lengthField = strconv.FormatFloat(length, 'f', -1, 64)
	}
	return `{"artist":` + artistField + `,"auth":"Logged In","firstName":"Kaylee","gender":"F",` +
		`"itemInSession":0,"lastName":"Summers","length":` + lengthField + `,"level":"` + level + `",` +
		`"location":"Phoenix-Mesa-Scottsdale, AZ","method":"PUT","page":"` + page + `",` +
		`"registration":1540344794796.0,"sessionId":139,"song":` + songField + `,"status":200,` +
		`"ts":` + strconv.FormatInt(ts, 10) + `,"userAgent":"Mozilla/5.0","userId":"` + userID + `"}`
}
