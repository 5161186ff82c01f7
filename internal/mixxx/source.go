package mixxx

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/mixxport/internal/models"
	"github.com/desertthunder/mixxport/internal/shared"
)

// Source is the read-only contract against the Mixxx store. Implementations
// never mutate the underlying database.
type Source interface {
	FetchTracks() ([]models.Track, error)                // library rows joined with file locations, without cues
	FetchCues() ([]models.CuePoint, error)               // all cue markers keyed by owning track
	FetchCrates() ([]models.Collection, error)           // crates with unordered membership
	FetchPlaylists() ([]models.Collection, error)        // visible playlists with position-ordered membership
	Close() error
}

// requiredTables is the schema surface the exporter reads. A database missing
// any of these is not a Mixxx library.
var requiredTables = []string{
	"library",
	"track_locations",
	"cues",
	"crates",
	"crate_tracks",
	"playlists",
	"playlisttracks",
}

// SQLiteSource implements [Source] over a mixxx.sqlite database.
type SQLiteSource struct {
	db *sql.DB
}

// Open opens the Mixxx database at path read-only and verifies the expected
// schema is present. Failures wrap [shared.ErrSourceUnavailable].
func Open(path string) (*SQLiteSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}

	// mode=ro guarantees the run never mutates the library, even by accident.
	db, err := shared.NewDatabase(fmt.Sprintf("file:%s?mode=ro", abs))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}

	src := &SQLiteSource{db: db}
	if err := src.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return src, nil
}

// NewSQLiteSource wraps an already open connection. The caller is responsible
// for ensuring it points at a Mixxx-shaped database; tests use this with
// in-memory fixtures.
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// Close releases the database connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteSource) checkSchema() error {
	rows, err := s.db.Query("SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
		}
		present[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}

	var missing []string
	for _, table := range requiredTables {
		if !present[table] {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing tables: %s", shared.ErrSourceUnavailable, strings.Join(missing, ", "))
	}
	return nil
}

// FetchTracks reads every library row joined to its file location.
// Nullable columns map to absent [models.Optional] values, never sentinels.
func (s *SQLiteSource) FetchTracks() ([]models.Track, error) {
	query := `
		SELECT l.id, l.artist, l.title, l.album, l.year, l.genre, l.grouping,
		       l.tracknumber, l.comment, l.samplerate, l.bitrate, l.bpm,
		       l.duration, tl.location, tl.filesize
		FROM library l
		JOIN track_locations tl ON l.location = tl.id
		ORDER BY l.id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		var (
			id                     int64
			artist, title, album   sql.NullString
			year, trackNumber      sql.NullInt64
			genre, grouping        sql.NullString
			comment                sql.NullString
			sampleRate, bitRate    sql.NullInt64
			bpm, duration          sql.NullFloat64
			location               string
			fileSize               sql.NullInt64
		)
		if err := rows.Scan(&id, &artist, &title, &album, &year, &genre, &grouping,
			&trackNumber, &comment, &sampleRate, &bitRate, &bpm,
			&duration, &location, &fileSize); err != nil {
			return nil, fmt.Errorf("failed to scan track row: %w", err)
		}

		tracks = append(tracks, models.Track{
			ID:          models.TrackID(id),
			Artist:      artist.String,
			Title:       title.String,
			Album:       album.String,
			BPM:         bpm.Float64,
			Year:        optionalInt(year),
			Genre:       optionalString(genre),
			Grouping:    optionalString(grouping),
			Comment:     optionalString(comment),
			TrackNumber: optionalInt(trackNumber),
			Duration:    duration.Float64,
			SampleRate:  int(sampleRate.Int64),
			BitRate:     int(bitRate.Int64),
			FileSize:    fileSize.Int64,
			Location:    location,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read track rows: %w", err)
	}
	return tracks, nil
}

// FetchCues reads every cue marker in the database.
func (s *SQLiteSource) FetchCues() ([]models.CuePoint, error) {
	rows, err := s.db.Query("SELECT track_id, type, position, hotcue, label FROM cues ORDER BY track_id, position")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cues: %w", err)
	}
	defer rows.Close()

	var cues []models.CuePoint
	for rows.Next() {
		var (
			trackID  int64
			cueType  int
			position sql.NullFloat64
			hotcue   sql.NullInt64
			label    sql.NullString
		)
		if err := rows.Scan(&trackID, &cueType, &position, &hotcue, &label); err != nil {
			return nil, fmt.Errorf("failed to scan cue row: %w", err)
		}

		cues = append(cues, models.CuePoint{
			TrackID:  models.TrackID(trackID),
			Type:     cueType,
			Position: position.Float64,
			Hotcue:   int(hotcue.Int64),
			Label:    optionalString(label),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cue rows: %w", err)
	}
	return cues, nil
}

// FetchCrates reads all crates with their membership. Member order is
// whatever the database returns; crates are unordered and downstream code
// never relies on it.
func (s *SQLiteSource) FetchCrates() ([]models.Collection, error) {
	return s.fetchCollections(
		"SELECT id, name FROM crates ORDER BY name",
		"SELECT crate_id, track_id FROM crate_tracks",
		models.KindCrate,
	)
}

// FetchPlaylists reads all visible playlists with position-ordered
// membership. Hidden playlists (Mixxx internals like auto-DJ history) are
// excluded.
func (s *SQLiteSource) FetchPlaylists() ([]models.Collection, error) {
	return s.fetchCollections(
		"SELECT id, name FROM Playlists WHERE hidden = 0 ORDER BY name",
		"SELECT playlist_id, track_id FROM PlaylistTracks ORDER BY position ASC",
		models.KindPlaylist,
	)
}

func (s *SQLiteSource) fetchCollections(mainQuery, linkQuery string, kind models.CollectionKind) ([]models.Collection, error) {
	rows, err := s.db.Query(mainQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %ss: %w", kind, err)
	}
	defer rows.Close()

	var collections []models.Collection
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		index[id] = len(collections)
		collections = append(collections, models.Collection{ID: id, Name: name, Kind: kind})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", kind, err)
	}

	links, err := s.db.Query(linkQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s tracks: %w", kind, err)
	}
	defer links.Close()

	for links.Next() {
		var collectionID, trackID int64
		if err := links.Scan(&collectionID, &trackID); err != nil {
			return nil, fmt.Errorf("failed to scan %s track row: %w", kind, err)
		}
		if i, ok := index[collectionID]; ok {
			collections[i].TrackIDs = append(collections[i].TrackIDs, models.TrackID(trackID))
		}
	}
	if err := links.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s track rows: %w", kind, err)
	}

	return collections, nil
}

// optionalString maps a nullable text column to an Optional. NULL and the
// empty string both count as absent; Mixxx writes '' for fields the user
// never touched.
func optionalString(ns sql.NullString) models.Optional[string] {
	if !ns.Valid || ns.String == "" {
		return models.None[string]()
	}
	return models.Some(ns.String)
}

// optionalInt maps a nullable integer column to an Optional. NULL and zero
// both count as absent; Mixxx stores 0 for unset years and track numbers.
func optionalInt(ni sql.NullInt64) models.Optional[int] {
	if !ni.Valid || ni.Int64 == 0 {
		return models.None[int]()
	}
	return models.Some(int(ni.Int64))
}
