package tasks

import (
	"encoding/xml"
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/mixxport/internal/models"
	"github.com/desertthunder/mixxport/internal/rekordbox"
	"github.com/desertthunder/mixxport/internal/shared"
	tu "github.com/desertthunder/mixxport/internal/testing"
)

func engineSource() *tu.MemorySource {
	return &tu.MemorySource{
		Tracks: []models.Track{
			tu.Track(1, "one", 128),
			tu.Track(2, "two", 120),
			tu.Track(3, "three", 124),
		},
		Cues: []models.CuePoint{
			{TrackID: 1, Type: models.CueTypeHotCue, Position: 88200},
		},
		Crates: []models.Collection{
			{ID: 1, Name: "House", Kind: models.KindCrate, TrackIDs: []models.TrackID{1, 2}},
			{ID: 2, Name: "Ambient", Kind: models.KindCrate, TrackIDs: []models.TrackID{3}},
		},
		Playlists: []models.Collection{
			{ID: 1, Name: "Warmup", Kind: models.KindPlaylist, TrackIDs: []models.TrackID{3, 1, 2}},
		},
	}
}

func TestExportEngine(t *testing.T) {
	t.Run("Run exports every crate-referenced track", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "rekordbox.xml")
		engine := NewExportEngine(engineSource(), nil)

		result, err := engine.Run(&shared.ExportOptions{OutputPath: output})
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !result.Written {
			t.Fatal("expected output to be written")
		}
		if result.TrackCount != 3 || result.CollectionCount != 2 {
			t.Errorf("expected 3 tracks in 2 collections, got %d in %d", result.TrackCount, result.CollectionCount)
		}

		data := tu.MustReadFile(t, output)
		var doc rekordbox.Document
		if err := xml.Unmarshal([]byte(data), &doc); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}

		// the exported identity set equals the union of crate membership
		got := make(map[string]bool)
		for _, entry := range doc.Collection.Tracks {
			got[entry.TrackID] = true
		}
		for _, id := range []string{"1", "2", "3"} {
			if !got[id] {
				t.Errorf("expected track %s in catalog", id)
			}
		}
		if len(got) != 3 {
			t.Errorf("expected exactly 3 catalog entries, got %d", len(got))
		}
	})

	t.Run("Run twice produces byte-identical output", func(t *testing.T) {
		dir := t.TempDir()
		first := filepath.Join(dir, "first.xml")
		second := filepath.Join(dir, "second.xml")
		engine := NewExportEngine(engineSource(), nil)

		if _, err := engine.Run(&shared.ExportOptions{OutputPath: first}); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if _, err := engine.Run(&shared.ExportOptions{OutputPath: second}); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		if tu.MustReadFile(t, first) != tu.MustReadFile(t, second) {
			t.Error("expected identical output across runs over unchanged source")
		}
	})

	t.Run("unknown playlist aborts before writing", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "rekordbox.xml")
		engine := NewExportEngine(engineSource(), nil)

		_, err := engine.Run(&shared.ExportOptions{
			OutputPath:   output,
			PlaylistMode: true,
			Playlists:    []string{"Ghost"},
		})
		if !errors.Is(err, shared.ErrUnknownCollection) {
			t.Fatalf("expected ErrUnknownCollection, got %v", err)
		}
		tu.AssertNoFile(t, output)
	})

	t.Run("empty export set writes nothing", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "rekordbox.xml")
		src := engineSource()
		src.Crates = nil
		engine := NewExportEngine(src, nil)

		result, err := engine.Run(&shared.ExportOptions{OutputPath: output})
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if result.Written {
			t.Error("expected no write for empty export set")
		}
		tu.AssertNoFile(t, output)
	})

	t.Run("extraction failure aborts the run", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "rekordbox.xml")
		src := engineSource()
		src.TracksErr = errors.New("disk gone")
		engine := NewExportEngine(src, nil)

		if _, err := engine.Run(&shared.ExportOptions{OutputPath: output}); err == nil {
			t.Fatal("expected extraction error to propagate")
		}
		tu.AssertNoFile(t, output)
	})

	t.Run("playlist export preserves order and cues", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "rekordbox.xml")
		engine := NewExportEngine(engineSource(), nil)

		if _, err := engine.Run(&shared.ExportOptions{
			OutputPath:   output,
			PlaylistMode: true,
			Playlists:    []string{"Warmup"},
		}); err != nil {
			t.Fatalf("run failed: %v", err)
		}

		var doc rekordbox.Document
		if err := xml.Unmarshal([]byte(tu.MustReadFile(t, output)), &doc); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}

		node := doc.Playlists.Root.Nodes[0]
		want := []string{"3", "1", "2"}
		for i, key := range want {
			if node.Tracks[i].Key != key {
				t.Errorf("expected key %s at position %d, got %s", key, i, node.Tracks[i].Key)
			}
		}

		// track 1 carries one hot cue at 88200 / (2*44100) = 1.000 seconds
		for _, entry := range doc.Collection.Tracks {
			if entry.TrackID != "1" {
				continue
			}
			if len(entry.PositionMarks) != 1 {
				t.Fatalf("expected 1 position mark, got %d", len(entry.PositionMarks))
			}
			if entry.PositionMarks[0].Start != "1.000" || entry.PositionMarks[0].Name != "Cue 1" {
				t.Errorf("unexpected position mark: %+v", entry.PositionMarks[0])
			}
		}
	})
}

func TestListCollections(t *testing.T) {
	engine := NewExportEngine(engineSource(), nil)

	t.Run("ListCrates", func(t *testing.T) {
		names, err := engine.ListCrates()
		if err != nil {
			t.Fatalf("failed to list crates: %v", err)
		}
		if len(names) != 2 || names[0] != "Ambient" || names[1] != "House" {
			t.Errorf("expected sorted [Ambient House], got %v", names)
		}
	})

	t.Run("ListPlaylists", func(t *testing.T) {
		names, err := engine.ListPlaylists()
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(names) != 1 || names[0] != "Warmup" {
			t.Errorf("expected [Warmup], got %v", names)
		}
	})

	t.Run("source failure propagates", func(t *testing.T) {
		src := engineSource()
		src.CratesErr = errors.New("no such table")
		if _, err := NewExportEngine(src, nil).ListCrates(); err == nil {
			t.Error("expected error from failing source")
		}
	})
}
