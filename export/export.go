package export

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnobserved indicates a cell without a state in strict mode.
	ErrUnobserved = errors.New("export: unobserved cell")
	// ErrUnknownFormat indicates an unsupported output format name.
	ErrUnknownFormat = errors.New("export: unknown format")
	// ErrTileSize indicates a tile size below 1.
	ErrTileSize = errors.New("export: tile size must be ≥ 1")
)

// Format names an output format.
type Format string

const (
	// FormatMVImport is the MagicaVoxel import list.
	FormatMVImport Format = "mv_import"
	// FormatJSONL is newline-delimited JSON placements.
	FormatJSONL Format = "jsonl"
)

// Defaults.
const (
	DefaultTileSize = 3
	DefaultVoxDir   = "states"
	// CompressedSuffix selects zstd compression in Create.
	CompressedSuffix = ".zst"
)

// ParseFormat accepts "mv_import" and "jsonl"; "" selects mv_import.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatMVImport:
		return FormatMVImport, nil
	case FormatJSONL:
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Options holds the resolved export settings.
type Options struct {
	TileSize int
	VoxDir   string
	Strict   bool
}

// Option configures a write.
type Option func(*Options)

// WithTileSize scales voxel coordinates in mv_import output.
func WithTileSize(n int) Option {
	return func(o *Options) { o.TileSize = n }
}

// WithVoxDir sets the directory holding one <state>.vox model per state.
func WithVoxDir(dir string) Option {
	return func(o *Options) { o.VoxDir = dir }
}

// WithStrict rejects unobserved cells with ErrUnobserved.
func WithStrict() Option {
	return func(o *Options) { o.Strict = true }
}

func resolve(opts []Option) (Options, error) {
	o := Options{TileSize: DefaultTileSize, VoxDir: DefaultVoxDir}
	for _, opt := range opts {
		opt(&o)
	}
	if o.TileSize < 1 {
		return o, fmt.Errorf("%w: %d", ErrTileSize, o.TileSize)
	}
	return o, nil
}
