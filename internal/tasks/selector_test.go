package tasks

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/mixxport/internal/models"
	"github.com/desertthunder/mixxport/internal/shared"
	tu "github.com/desertthunder/mixxport/internal/testing"
)

func selectorLibrary() *models.Library {
	lib := &models.Library{Tracks: make(map[models.TrackID]*models.Track)}
	for _, t := range []models.Track{
		tu.Track(1, "one", 128),
		tu.Track(2, "two", 120),
		tu.Track(3, "three", 124),
		tu.Track(4, "four", 124),
	} {
		track := t
		lib.Tracks[track.ID] = &track
	}

	lib.Crates = []models.Collection{
		{ID: 1, Name: "A", Kind: models.KindCrate, TrackIDs: []models.TrackID{2, 1}},
		{ID: 2, Name: "B", Kind: models.KindCrate, TrackIDs: []models.TrackID{3}},
		{ID: 3, Name: "C", Kind: models.KindCrate, TrackIDs: []models.TrackID{4}},
	}
	lib.Playlists = []models.Collection{
		{ID: 1, Name: "Warmup", Kind: models.KindPlaylist, TrackIDs: []models.TrackID{3, 1, 2}},
		{ID: 2, Name: "Peak", Kind: models.KindPlaylist, TrackIDs: []models.TrackID{4, 3}},
	}
	return lib
}

func collectionNames(set *models.ExportSet) []string {
	names := make([]string, 0, len(set.Collections))
	for _, c := range set.Collections {
		names = append(names, c.Name)
	}
	return names
}

func TestResolveExportSet(t *testing.T) {
	lib := selectorLibrary()

	t.Run("crate mode excludes by exact name", func(t *testing.T) {
		set, err := ResolveExportSet(lib, &shared.ExportOptions{ExcludeCrates: []string{"B"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		names := collectionNames(set)
		if len(names) != 2 || names[0] != "A" || names[1] != "C" {
			t.Errorf("expected [A C], got %v", names)
		}
	})

	t.Run("unmatched exclude entries are ignored", func(t *testing.T) {
		set, err := ResolveExportSet(lib, &shared.ExportOptions{ExcludeCrates: []string{"Nope"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(set.Collections) != 3 {
			t.Errorf("expected all 3 crates, got %v", collectionNames(set))
		}
	})

	t.Run("crate members ordered by track id without a sort", func(t *testing.T) {
		set, err := ResolveExportSet(lib, &shared.ExportOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		a := set.Collections[0]
		if a.Name != "A" || a.TrackIDs[0] != 1 || a.TrackIDs[1] != 2 {
			t.Errorf("expected crate A ordered [1 2], got %v", a.TrackIDs)
		}
	})

	t.Run("playlist mode keeps request order", func(t *testing.T) {
		set, err := ResolveExportSet(lib, &shared.ExportOptions{
			PlaylistMode: true,
			Playlists:    []string{"Peak", "Warmup"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		names := collectionNames(set)
		if names[0] != "Peak" || names[1] != "Warmup" {
			t.Errorf("expected request order [Peak Warmup], got %v", names)
		}
	})

	t.Run("playlist membership order preserved exactly", func(t *testing.T) {
		set, err := ResolveExportSet(lib, &shared.ExportOptions{
			PlaylistMode: true,
			Playlists:    []string{"Warmup"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []models.TrackID{3, 1, 2}
		got := set.Collections[0].TrackIDs
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected insertion order %v, got %v", want, got)
			}
		}
	})

	t.Run("bpm sort overrides playlist order", func(t *testing.T) {
		set, err := ResolveExportSet(lib, &shared.ExportOptions{
			PlaylistMode: true,
			Playlists:    []string{"Warmup"},
			Sort:         models.SortAsc,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// BPMs: track 2 = 120, track 3 = 124, track 1 = 128
		want := []models.TrackID{2, 3, 1}
		got := set.Collections[0].TrackIDs
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected BPM ascending %v, got %v", want, got)
			}
		}
	})

	t.Run("bpm descending with ties broken by id", func(t *testing.T) {
		set, err := ResolveExportSet(lib, &shared.ExportOptions{
			PlaylistMode: true,
			Playlists:    []string{"Peak"},
			Sort:         models.SortDesc,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// tracks 3 and 4 both sit at 124 BPM; the lower id wins the tie
		want := []models.TrackID{3, 4}
		got := set.Collections[0].TrackIDs
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("unknown playlists abort with every missing name", func(t *testing.T) {
		_, err := ResolveExportSet(lib, &shared.ExportOptions{
			PlaylistMode: true,
			Playlists:    []string{"Warmup", "Ghost", "Phantom"},
		})
		if !errors.Is(err, shared.ErrUnknownCollection) {
			t.Fatalf("expected ErrUnknownCollection, got %v", err)
		}
		if !strings.Contains(err.Error(), "Ghost") || !strings.Contains(err.Error(), "Phantom") {
			t.Errorf("expected both missing names in error, got %v", err)
		}
	})
}
