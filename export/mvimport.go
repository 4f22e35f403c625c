package export

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/wfc"
)

// Header is the comment line opening every mv_import list.
const Header = "// Generated by voxwfc"

// WriteMVImport writes the MagicaVoxel import list for a collapsed map.
// The import size is the largest dimension times the tile size.
func WriteMVImport(w io.Writer, d lattice.Dimensions, as []wfc.Assignment, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}
	voxDir, err := filepath.Abs(o.VoxDir)
	if err != nil {
		return fmt.Errorf("export: resolve vox dir: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)
	fmt.Fprintf(bw, "mv_import %d\n", d.Max()*o.TileSize)

	paths := make(map[string]string)
	for _, a := range as {
		if !a.Observed {
			if o.Strict {
				return fmt.Errorf("%w: cell %d at %s", ErrUnobserved, a.Cell, a.Point)
			}
			continue
		}
		path, ok := paths[a.State]
		if !ok {
			path = filepath.Join(voxDir, a.State+".vox")
			paths[a.State] = path
		}
		t := o.TileSize
		if _, err := fmt.Fprintf(bw, "%d %d %d %s\n", a.Point.X*t, a.Point.Y*t, a.Point.Z*t, path); err != nil {
			return err
		}
	}
	return bw.Flush()
}
