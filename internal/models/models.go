package models

import (
	"fmt"
	"sort"
)

// Optional holds a value that may be absent in the source database.
//
// Downstream code branches on presence, never on sentinel values, so a track
// with year 0 and a track with no year remain distinguishable.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present reports whether a value is set.
func (o Optional[T]) Present() bool {
	return o.present
}

// Or returns the value if present, otherwise the fallback.
func (o Optional[T]) Or(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// TrackID is the stable identity of a track within one Mixxx library.
// It doubles as the rekordbox TrackID so repeated exports over an unchanged
// library produce identical documents.
type TrackID int64

// Cue marker types as stored in the Mixxx cues table. Only hot cues are
// representable as rekordbox memory cues; the rest are dropped on export.
const (
	CueTypeInvalid = 0
	CueTypeHotCue  = 1
	CueTypeMainCue = 2
	CueTypeLoop    = 4
	CueTypeJump    = 5
	CueTypeIntro   = 6
	CueTypeOutro   = 7
)

// CuePoint is one marked position within a track, owned by exactly one track.
//
// Position is the raw Mixxx value: an offset in interleaved stereo samples,
// so seconds = Position / (2 × sample rate). Conversion happens in the
// rekordbox package, not here.
type CuePoint struct {
	TrackID  TrackID
	Type     int
	Position float64
	Hotcue   int
	Label    Optional[string]
}

// Track is one library row joined with its file location and cue markers.
type Track struct {
	ID          TrackID
	Artist      string
	Title       string
	Album       string
	BPM         float64
	Year        Optional[int]
	Genre       Optional[string]
	Grouping    Optional[string]
	Comment     Optional[string]
	TrackNumber Optional[int]
	Duration    float64
	SampleRate  int
	BitRate     int
	FileSize    int64
	Location    string
	Cues        []CuePoint
}

// CollectionKind distinguishes crates from playlists. Crates are unordered
// by nature; playlist membership order is semantically meaningful and must
// survive export untouched.
type CollectionKind int

const (
	KindCrate CollectionKind = iota
	KindPlaylist
)

func (k CollectionKind) String() string {
	if k == KindPlaylist {
		return "playlist"
	}
	return "crate"
}

// Collection is a named crate or playlist and its member track ids. For
// playlists TrackIDs carries the source insertion order; for crates the
// slice order is incidental and never relied on.
type Collection struct {
	ID       int64
	Name     string
	Kind     CollectionKind
	TrackIDs []TrackID
}

// Library is the full normalized contents of one Mixxx database, read once
// per run and never mutated afterwards.
type Library struct {
	Tracks    map[TrackID]*Track
	Crates    []Collection
	Playlists []Collection
}

// TrackByID resolves a track reference from a collection.
func (l *Library) TrackByID(id TrackID) (*Track, bool) {
	t, ok := l.Tracks[id]
	return t, ok
}

// CrateNames returns all crate names sorted alphabetically.
func (l *Library) CrateNames() []string {
	return collectionNames(l.Crates)
}

// PlaylistNames returns all playlist names sorted alphabetically.
func (l *Library) PlaylistNames() []string {
	return collectionNames(l.Playlists)
}

func collectionNames(cs []Collection) []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// SortOrder is the BPM sort policy for exported collections.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder validates a sort-by-bpm value from configuration or flags.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortNone, SortAsc, SortDesc:
		return SortOrder(s), nil
	default:
		return SortNone, fmt.Errorf("invalid sort order %q (want asc or desc)", s)
	}
}

// ResolvedCollection is one collection tagged with its final export order.
// TrackIDs is already sequenced: the document builder emits it verbatim.
type ResolvedCollection struct {
	Name     string
	Kind     CollectionKind
	TrackIDs []TrackID
}

// ExportSet is the finalized list of collections for one run, built once by
// the selector and immutable thereafter.
type ExportSet struct {
	Collections []ResolvedCollection
}

// TrackUniverse returns the deduplicated set of track ids referenced by any
// collection in the set, sorted ascending for deterministic catalogs.
func (s *ExportSet) TrackUniverse() []TrackID {
	seen := make(map[TrackID]struct{})
	for _, c := range s.Collections {
		for _, id := range c.TrackIDs {
			seen[id] = struct{}{}
		}
	}
	ids := make([]TrackID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Empty reports whether the set references no tracks at all.
func (s *ExportSet) Empty() bool {
	for _, c := range s.Collections {
		if len(c.TrackIDs) > 0 {
			return false
		}
	}
	return true
}
