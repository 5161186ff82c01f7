package mixxx

import (
	"path/filepath"

	"github.com/desertthunder/mixxport/internal/models"
)

// Extract reads the complete library from src in one pass: tracks, cue
// markers, crates, and playlists. Cues attach to their owning tracks;
// membership rows pointing at tracks absent from the library table are
// dropped so every collection reference resolves.
func Extract(src Source) (*models.Library, error) {
	tracks, err := src.FetchTracks()
	if err != nil {
		return nil, err
	}

	lib := &models.Library{Tracks: make(map[models.TrackID]*models.Track, len(tracks))}
	for i := range tracks {
		t := &tracks[i]
		t.Location = normalizeLocation(t.Location)
		lib.Tracks[t.ID] = t
	}

	cues, err := src.FetchCues()
	if err != nil {
		return nil, err
	}
	for _, cue := range cues {
		if t, ok := lib.Tracks[cue.TrackID]; ok {
			t.Cues = append(t.Cues, cue)
		}
	}

	if lib.Crates, err = fetchMembers(src.FetchCrates, lib); err != nil {
		return nil, err
	}
	if lib.Playlists, err = fetchMembers(src.FetchPlaylists, lib); err != nil {
		return nil, err
	}

	return lib, nil
}

func fetchMembers(fetch func() ([]models.Collection, error), lib *models.Library) ([]models.Collection, error) {
	collections, err := fetch()
	if err != nil {
		return nil, err
	}
	for i := range collections {
		kept := make([]models.TrackID, 0, len(collections[i].TrackIDs))
		for _, id := range collections[i].TrackIDs {
			if _, ok := lib.Tracks[id]; ok {
				kept = append(kept, id)
			}
		}
		collections[i].TrackIDs = kept
	}
	return collections, nil
}

// normalizeLocation cleans a source file path into an absolute, slash-form
// path. Mixxx stores absolute native paths; cleaning keeps exports stable
// when the same library is read on different platforms.
func normalizeLocation(location string) string {
	if location == "" {
		return location
	}
	cleaned := filepath.ToSlash(filepath.Clean(location))
	if !filepath.IsAbs(cleaned) {
		if abs, err := filepath.Abs(cleaned); err == nil {
			cleaned = filepath.ToSlash(abs)
		}
	}
	return cleaned
}
