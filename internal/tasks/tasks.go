package tasks

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixxport/internal/mixxx"
	"github.com/desertthunder/mixxport/internal/models"
	"github.com/desertthunder/mixxport/internal/rekordbox"
	"github.com/desertthunder/mixxport/internal/shared"
)

// ExportEngine orchestrates one export run against an open source.
type ExportEngine struct {
	source mixxx.Source
	logger *log.Logger
}

// NewExportEngine creates an engine over the given source. A nil logger
// falls back to the shared default.
func NewExportEngine(source mixxx.Source, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{source: source, logger: logger}
}

// ExportResult summarizes a completed run.
type ExportResult struct {
	OutputPath      string // Final destination path
	TrackCount      int    // Distinct tracks in the catalog
	CollectionCount int    // Collections in the playlist tree
	Written         bool   // False when the export set referenced no tracks
}

// Run executes the full pipeline: extract the library, resolve the export
// set, build the document, and write it atomically. Selection errors surface
// before anything touches the destination path. An export set referencing no
// tracks writes nothing and reports Written=false, matching how an empty
// library is not an error.
func (e *ExportEngine) Run(opts *shared.ExportOptions) (*ExportResult, error) {
	lib, err := mixxx.Extract(e.source)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("library extracted", "tracks", len(lib.Tracks), "crates", len(lib.Crates), "playlists", len(lib.Playlists))

	set, err := ResolveExportSet(lib, opts)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		OutputPath:      opts.OutputPath,
		CollectionCount: len(set.Collections),
	}
	if set.Empty() {
		e.logger.Warn("export set references no tracks, skipping write")
		return result, nil
	}

	doc, err := rekordbox.BuildDocument(lib, set)
	if err != nil {
		return nil, err
	}
	if err := rekordbox.WriteFile(doc, opts.OutputPath); err != nil {
		return nil, err
	}

	result.TrackCount = doc.Collection.Entries
	result.Written = true
	e.logger.Info("export complete", "tracks", result.TrackCount, "collections", result.CollectionCount, "output", result.OutputPath)
	return result, nil
}

// ListCrates enumerates crate names, sorted, without running the rest of the
// pipeline.
func (e *ExportEngine) ListCrates() ([]string, error) {
	crates, err := e.source.FetchCrates()
	if err != nil {
		return nil, err
	}
	return sortedNames(crates), nil
}

// ListPlaylists enumerates visible playlist names, sorted, without running
// the rest of the pipeline.
func (e *ExportEngine) ListPlaylists() ([]string, error) {
	playlists, err := e.source.FetchPlaylists()
	if err != nil {
		return nil, err
	}
	return sortedNames(playlists), nil
}

// sortedNames sorts collection names itself rather than trusting the source
// query's ORDER BY; the listing contract is sorted output regardless.
func sortedNames(cs []models.Collection) []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}
