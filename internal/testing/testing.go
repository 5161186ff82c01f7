// package testing contains shared testing utilities
package testing

import (
	"errors"
	"os"
	"testing"

	"github.com/desertthunder/mixxport/internal/models"
)

// MemorySource is an in-memory test double for [mixxx.Source].
//
// Each Fetch method returns its field or the paired error; the zero value
// behaves like an empty but reachable library.
type MemorySource struct {
	Tracks    []models.Track
	Cues      []models.CuePoint
	Crates    []models.Collection
	Playlists []models.Collection

	TracksErr    error
	CuesErr      error
	CratesErr    error
	PlaylistsErr error
}

// Fetch methods return copies so callers mutating the results (attaching
// cues, filtering membership) never corrupt the fixture between runs.

func (m *MemorySource) FetchTracks() ([]models.Track, error) {
	if m.TracksErr != nil {
		return nil, m.TracksErr
	}
	return append([]models.Track(nil), m.Tracks...), nil
}

func (m *MemorySource) FetchCues() ([]models.CuePoint, error) {
	if m.CuesErr != nil {
		return nil, m.CuesErr
	}
	return append([]models.CuePoint(nil), m.Cues...), nil
}

func (m *MemorySource) FetchCrates() ([]models.Collection, error) {
	if m.CratesErr != nil {
		return nil, m.CratesErr
	}
	return append([]models.Collection(nil), m.Crates...), nil
}

func (m *MemorySource) FetchPlaylists() ([]models.Collection, error) {
	if m.PlaylistsErr != nil {
		return nil, m.PlaylistsErr
	}
	return append([]models.Collection(nil), m.Playlists...), nil
}

func (m *MemorySource) Close() error { return nil }

// Track builds a minimal valid track for fixtures.
func Track(id int64, title string, bpm float64) models.Track {
	return models.Track{
		ID:         models.TrackID(id),
		Artist:     "Artist",
		Title:      title,
		BPM:        bpm,
		Duration:   180,
		SampleRate: 44100,
		BitRate:    320,
		FileSize:   1024,
		Location:   "/music/" + title + ".mp3",
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
