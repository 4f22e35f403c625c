package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/voxwfc/config"
	"github.com/katalvlaran/voxwfc/export"
	"github.com/katalvlaran/voxwfc/fields"
	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/runindex"
	"github.com/katalvlaran/voxwfc/wfc"
)

type generateFlags struct {
	config      string
	size        string
	preset      string
	seed        int64
	maxDistance int
	strict      bool
	retries     int
	out         string
	format      string
	tileSize    int
	voxDir      string
	index       string
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a map and export it",
		Long: `Generates one map from a run file and flag overrides, writes it in the
selected format and records the run in the catalogue when an index is set.

A run that fails with a contradiction is retried up to --retries times with
seeds derived from --seed. Configuration errors are never retried.

Example:
  voxwfc generate --size small --preset simple --seed 42 --out map.txt
  voxwfc generate --config run.yaml --format jsonl --out map.jsonl.zst`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return err
			}
			f.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return a.generate(cmd, cfg)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML run file")
	fl.StringVar(&f.size, "size", "", "map size: test-one, small, medium, large")
	fl.StringVarP(&f.preset, "preset", "p", "", "state preset (see 'voxwfc presets')")
	fl.Int64Var(&f.seed, "seed", 0, "random seed (0 selects the fixed default)")
	fl.IntVar(&f.maxDistance, "max-distance", wfc.DefaultMaxDistance, "propagation radius in hops")
	fl.BoolVar(&f.strict, "strict", false, "fail in propagation as soon as a cell is zeroed")
	fl.IntVar(&f.retries, "retries", 0, "extra attempts after a contradiction")
	fl.StringVarP(&f.out, "out", "o", "", "output path (.zst compresses)")
	fl.StringVar(&f.format, "format", "", "output format: mv_import, jsonl")
	fl.IntVar(&f.tileSize, "tile-size", export.DefaultTileSize, "mv_import voxel scale")
	fl.StringVar(&f.voxDir, "vox-dir", "", "directory of <state>.vox models")
	fl.StringVar(&f.index, "index", "", "SQLite run catalogue")
	return cmd
}

// apply overrides the run file with the flags set on the command line.
func (f *generateFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("size") {
		cfg.Size, cfg.Dims = f.size, nil
	}
	if changed("preset") {
		cfg.Preset = f.preset
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("max-distance") {
		cfg.MaxDistance = f.maxDistance
	}
	if changed("strict") {
		cfg.Contradiction = wfc.ContradictionDeferred.String()
		if f.strict {
			cfg.Contradiction = wfc.ContradictionStrict.String()
		}
	}
	if changed("retries") {
		cfg.Retries = f.retries
	}
	if changed("out") {
		cfg.Output.Path = f.out
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("tile-size") {
		cfg.Output.TileSize = f.tileSize
	}
	if changed("vox-dir") {
		cfg.Output.VoxDir = f.voxDir
	}
	if changed("index") {
		cfg.Index.Path = f.index
	}
}

// generate runs the collapse with retries, exports a completed map and
// records the outcome.
func (a *app) generate(cmd *cobra.Command, cfg config.Config) error {
	d, err := cfg.Dimensions()
	if err != nil {
		return err
	}
	lat, err := lattice.New(d)
	if err != nil {
		return err
	}
	tbl, err := fields.Table(cfg.Preset)
	if err != nil {
		return err
	}
	log := a.logger.With(zap.String("preset", cfg.Preset), zap.Stringer("dimensions", d))

	var (
		e       *wfc.Engine
		runErr  error
		attempt int
	)
	start := time.Now()
	for attempt = 0; attempt <= cfg.Retries; attempt++ {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		opts, err := cfg.EngineOptions(attempt)
		if err != nil {
			return err
		}
		e, err = wfc.New(lat, tbl, append(opts, wfc.WithLogger(log))...)
		if err != nil {
			return err
		}
		runErr = e.Run()
		if !errors.Is(runErr, wfc.ErrContradiction) || attempt == cfg.Retries {
			break
		}
		log.Warn("contradiction, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int64("seed", wfc.DeriveSeed(cfg.Seed, attempt+1)),
			zap.Error(runErr))
	}
	elapsed := time.Since(start)

	run := runindex.Run{
		Preset:        cfg.Preset,
		Dimensions:    d,
		MaxDistance:   cfg.MaxDistance,
		Seed:          wfc.DeriveSeed(cfg.Seed, attempt),
		Attempts:      attempt + 1,
		Contradiction: cfg.Contradiction,
		Phase:         e.Phase().String(),
		Stats:         e.Stats(),
		Duration:      elapsed,
		Counts:        e.Counts(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	} else {
		format, err := export.ParseFormat(cfg.Output.Format)
		if err != nil {
			return err
		}
		if err := export.Create(cfg.Output.Path, format, d, e.Assignments(), cfg.ExportOptions()...); err != nil {
			return fmt.Errorf("export %s: %w", cfg.Output.Path, err)
		}
		run.Output = cfg.Output.Path
		log.Info("map exported", zap.String("path", cfg.Output.Path), zap.String("format", string(format)))
	}

	if cfg.Index.Path != "" {
		id, err := record(cmd, cfg.Index.Path, run)
		if err != nil {
			return err
		}
		run.ID = id
	}

	printSummary(cmd.OutOrStdout(), run)
	return runErr
}

func record(cmd *cobra.Command, path string, run runindex.Run) (string, error) {
	idx, err := runindex.Open(path)
	if err != nil {
		return "", err
	}
	defer idx.Close()
	return idx.Record(cmd.Context(), run)
}

func printSummary(w io.Writer, r runindex.Run) {
	s := r.Stats
	fmt.Fprintf(w, "%s: %s map %s (%s cells) in %s, attempts %d\n",
		r.Phase, r.Preset, r.Dimensions, humanize.Comma(int64(s.Cells)),
		r.Duration.Round(time.Microsecond), r.Attempts)
	fmt.Fprintf(w, "  sampled %s, forced %s at init + %s by propagation, %s updates\n",
		humanize.Comma(int64(s.Sampled)), humanize.Comma(int64(s.ForcedInitial)),
		humanize.Comma(int64(s.ForcedPropagated)), humanize.Comma(int64(s.Updates)))

	names := make([]string, 0, len(r.Counts))
	for name := range r.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n := r.Counts[name]
		fmt.Fprintf(w, "  %-12s %8s  %5.1f%%\n", name, humanize.Comma(int64(n)), 100*float64(n)/float64(max(s.Cells, 1)))
	}
	if r.Output != "" {
		size := ""
		if fi, err := os.Stat(r.Output); err == nil {
			size = " (" + humanize.Bytes(uint64(fi.Size())) + ")"
		}
		fmt.Fprintf(w, "  wrote %s%s\n", r.Output, size)
	}
	if r.ID != "" {
		fmt.Fprintf(w, "  run %s\n", r.ID)
	}
}
