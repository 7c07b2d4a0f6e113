// Package config loads the bdgraph CLI's YAML configuration file, falling
// back to flag defaults when no file is given (grounded on
// hyper-light-sylk/core/config/manager.go's yaml.v3-tagged Config struct
// and default/override pattern).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the driver's tunables: none of it is read by the bdgraph
// library itself, only by cmd/bdgraph.
type Config struct {
	// AlphabetStrict rejects non-ACGT bases in create_handle/set_handle_sequence
	// input instead of accepting any byte dna.Encode can't reject outright.
	AlphabetStrict bool `yaml:"alphabet_strict"`

	// SnapshotPath is the default path the build/validate/stats subcommands
	// read and write snapshots from when --snapshot is not given.
	SnapshotPath string `yaml:"snapshot_path"`

	// AutoCompactRatio makes the mutate driver run rebuild_id_handle_mapping
	// after any applied script line that leaves deleted_node_count /
	// node_count above this ratio, instead of only at explicit
	// serialization (spec §9's tombstone/compaction open question; see
	// DESIGN.md).
	AutoCompactRatio float64 `yaml:"auto_compact_ratio"`

	// IncludeHiddenByDefault sets the default for to-gfa's
	// --include-hidden flag.
	IncludeHiddenByDefault bool `yaml:"include_hidden_by_default"`
}

// Default returns the CLI's built-in defaults, used when no config file is
// present and as the base that a file's settings are merged onto.
func Default() *Config {
	return &Config{
		AlphabetStrict:         true,
		SnapshotPath:           "graph.bdg",
		AutoCompactRatio:       1.0 / 3.0,
		IncludeHiddenByDefault: false,
	}
}

// Load reads path and merges it onto Default(). A missing file is not an
// error: the driver falls back to flag defaults, mirroring the teacher's
// loadYAMLFile's "os.IsNotExist is not an error" convention.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
