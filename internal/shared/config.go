package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/mixxport/internal/models"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Export   ExportConfig   `toml:"export"`
}

// DatabaseConfig locates the Mixxx library database.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ExportConfig contains export defaults that CLI flags may override.
type ExportConfig struct {
	Output           string   `toml:"output"`
	SortByBPM        string   `toml:"sort_by_bpm"`
	ExcludeCrates    []string `toml:"exclude_crates"`
	DefaultPlaylists []string `toml:"default_playlists"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Overrides carries the export-relevant CLI flag values. Zero values mean
// "not given", except Playlists where PlaylistsSet distinguishes an absent
// -p flag from -p with no names (which selects the configured defaults).
type Overrides struct {
	Database      string
	Output        string
	SortByBPM     string
	Playlists     []string
	PlaylistsSet  bool
	ExcludeCrates []string
	ExcludeSet    bool
}

// ExportOptions is the fully resolved configuration for one export run.
type ExportOptions struct {
	DatabasePath  string
	OutputPath    string
	Sort          models.SortOrder
	PlaylistMode  bool
	Playlists     []string
	ExcludeCrates []string
}

// ResolveExport merges file configuration with CLI overrides into the final
// options for a run. It is a pure function of its inputs: no file or flag
// parsing happens here, so merge policy is testable in isolation.
func ResolveExport(cfg *Config, o Overrides) (*ExportOptions, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dbPath := o.Database
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	if dbPath == "" {
		return nil, fmt.Errorf("%w: database path", ErrMissingArgument)
	}

	output := o.Output
	if output == "" {
		output = cfg.Export.Output
	}
	if output == "" {
		output = "rekordbox.xml"
	}

	rawSort := o.SortByBPM
	if rawSort == "" {
		rawSort = cfg.Export.SortByBPM
	}
	sortOrder, err := models.ParseSortOrder(rawSort)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	opts := &ExportOptions{
		DatabasePath: ExpandHome(dbPath),
		OutputPath:   ExpandHome(output),
		Sort:         sortOrder,
	}

	if o.PlaylistsSet {
		opts.PlaylistMode = true
		opts.Playlists = o.Playlists
		if len(opts.Playlists) == 0 {
			opts.Playlists = cfg.Export.DefaultPlaylists
		}
		if len(opts.Playlists) == 0 {
			return nil, fmt.Errorf("%w: no playlists given and default_playlists is empty", ErrInvalidConfig)
		}
		return opts, nil
	}

	opts.ExcludeCrates = o.ExcludeCrates
	if !o.ExcludeSet {
		opts.ExcludeCrates = cfg.Export.ExcludeCrates
	}
	return opts, nil
}
