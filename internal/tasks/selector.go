package tasks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/desertthunder/mixxport/internal/models"
	"github.com/desertthunder/mixxport/internal/shared"
)

// ResolveExportSet chooses which collections a run exports and fixes each
// one's track order. The result is immutable for the rest of the run.
//
// In playlist mode the requested names are matched exactly and kept in
// request order; any name missing from the library aborts the run with
// [shared.ErrUnknownCollection] listing every missing name at once. In the
// default crate mode all crates export except exact-match excludes, sorted
// by name; exclude entries matching nothing are ignored.
func ResolveExportSet(lib *models.Library, opts *shared.ExportOptions) (*models.ExportSet, error) {
	if opts.PlaylistMode {
		return selectPlaylists(lib, opts)
	}
	return selectCrates(lib, opts)
}

func selectPlaylists(lib *models.Library, opts *shared.ExportOptions) (*models.ExportSet, error) {
	byName := make(map[string]models.Collection, len(lib.Playlists))
	for _, p := range lib.Playlists {
		byName[p.Name] = p
	}

	var missing []string
	set := &models.ExportSet{}
	for _, name := range opts.Playlists {
		p, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		set.Collections = append(set.Collections, resolve(p, opts.Sort, lib))
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownCollection, strings.Join(missing, ", "))
	}
	return set, nil
}

func selectCrates(lib *models.Library, opts *shared.ExportOptions) (*models.ExportSet, error) {
	excluded := make(map[string]bool, len(opts.ExcludeCrates))
	for _, name := range opts.ExcludeCrates {
		excluded[name] = true
	}

	crates := make([]models.Collection, 0, len(lib.Crates))
	for _, c := range lib.Crates {
		if !excluded[c.Name] {
			crates = append(crates, c)
		}
	}
	sort.Slice(crates, func(i, j int) bool { return crates[i].Name < crates[j].Name })

	set := &models.ExportSet{}
	for _, c := range crates {
		set.Collections = append(set.Collections, resolve(c, opts.Sort, lib))
	}
	return set, nil
}

// resolve copies a collection's membership into its final export order.
//
// A BPM sort, when configured, applies to playlists and crates alike, with
// ties broken by track id for a deterministic total order. Without one,
// playlists keep their source insertion order exactly, and crates fall back
// to track-id order: crate membership is unordered and whatever order the
// database happened to return is never honored.
func resolve(c models.Collection, order models.SortOrder, lib *models.Library) models.ResolvedCollection {
	ids := make([]models.TrackID, len(c.TrackIDs))
	copy(ids, c.TrackIDs)

	switch {
	case order != models.SortNone:
		sort.Slice(ids, func(i, j int) bool {
			a, b := trackBPM(lib, ids[i]), trackBPM(lib, ids[j])
			if a != b {
				if order == models.SortDesc {
					return a > b
				}
				return a < b
			}
			return ids[i] < ids[j]
		})
	case c.Kind == models.KindCrate:
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	return models.ResolvedCollection{Name: c.Name, Kind: c.Kind, TrackIDs: ids}
}

func trackBPM(lib *models.Library, id models.TrackID) float64 {
	if t, ok := lib.TrackByID(id); ok {
		return t.BPM
	}
	return 0
}
