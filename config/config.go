// Package config loads run files: YAML documents validated against an
// embedded JSON Schema, then decoded over the defaults and checked against
// the registered presets and sizes.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/voxwfc/export"
	"github.com/katalvlaran/voxwfc/fields"
	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/wfc"
)

// Sentinel errors.
var (
	// ErrSchema wraps schema violations of a run file.
	ErrSchema = errors.New("config: schema violation")
	// ErrInvalid wraps semantic errors of a decoded config.
	ErrInvalid = errors.New("config: invalid")
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "voxwfc://run.schema.json"

var schema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// Config describes one generation run.
type Config struct {
	Size          string              `yaml:"size,omitempty"`
	Dims          *lattice.Dimensions `yaml:"dimensions,omitempty"`
	Preset        string              `yaml:"preset"`
	MaxDistance   int                 `yaml:"max_distance"`
	Seed          int64               `yaml:"seed"`
	Contradiction string              `yaml:"contradiction"`
	Retries       int                 `yaml:"retries"`
	Output        Output              `yaml:"output"`
	Index         Index               `yaml:"index"`
}

// Output selects where and how the collapsed map is written.
type Output struct {
	Path     string `yaml:"path"`
	Format   string `yaml:"format"`
	TileSize int    `yaml:"tile_size"`
	VoxDir   string `yaml:"vox_dir"`
	Strict   bool   `yaml:"strict,omitempty"`
}

// Index locates the run catalogue; an empty path disables it.
type Index struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no run file is given.
func Default() Config {
	return Config{
		Size:          fields.DefaultSize,
		Preset:        fields.DefaultPreset,
		MaxDistance:   wfc.DefaultMaxDistance,
		Contradiction: wfc.ContradictionDeferred.String(),
		Output: Output{
			Path:     "mv_import.txt",
			Format:   string(export.FormatMVImport),
			TileSize: export.DefaultTileSize,
			VoxDir:   export.DefaultVoxDir,
		},
	}
}

// Load reads and parses a run file. An empty path returns Default.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	cfg, err := Parse(b)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates data against the run schema and decodes it over Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := validateSchema(data); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Dims != nil {
		cfg.Size = ""
	}
	return cfg, cfg.Validate()
}

// validateSchema converts the YAML document to its JSON value and checks it.
func validateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: decode: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return nil
}

// Validate checks names and ranges against the registered presets, sizes
// and formats.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Dimensions(); err != nil {
		errs = append(errs, err)
	}
	if _, err := fields.Preset(c.Preset); err != nil {
		errs = append(errs, err)
	}
	if c.MaxDistance < 1 {
		errs = append(errs, fmt.Errorf("max_distance must be ≥ 1 (%d)", c.MaxDistance))
	}
	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must be ≥ 0 (%d)", c.Retries))
	}
	if _, err := wfc.ParseContradictionPolicy(c.Contradiction); err != nil {
		errs = append(errs, err)
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Output.TileSize < 1 {
		errs = append(errs, fmt.Errorf("output.tile_size must be ≥ 1 (%d)", c.Output.TileSize))
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("output.path is empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Dimensions resolves explicit dimensions or the named size.
func (c Config) Dimensions() (lattice.Dimensions, error) {
	if c.Dims != nil {
		return *c.Dims, c.Dims.Validate()
	}
	return fields.Size(c.Size)
}

// EngineOptions returns the engine options for attempt n (0-based); retries
// derive a fresh seed from the configured one.
func (c Config) EngineOptions(attempt int) ([]wfc.Option, error) {
	policy, err := wfc.ParseContradictionPolicy(c.Contradiction)
	if err != nil {
		return nil, err
	}
	return []wfc.Option{
		wfc.WithMaxDistance(c.MaxDistance),
		wfc.WithSeed(wfc.DeriveSeed(c.Seed, attempt)),
		wfc.WithContradictionPolicy(policy),
	}, nil
}

// ExportOptions returns the export options of the output section.
func (c Config) ExportOptions() []export.Option {
	opts := []export.Option{export.WithTileSize(c.Output.TileSize)}
	if c.Output.VoxDir != "" {
		opts = append(opts, export.WithVoxDir(c.Output.VoxDir))
	}
	if c.Output.Strict {
		opts = append(opts, export.WithStrict())
	}
	return opts
}
