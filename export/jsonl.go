package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/katalvlaran/voxwfc/wfc"
)

// Placement is one JSONL record.
type Placement struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Z     int    `json:"z"`
	State string `json:"state"`
}

// WriteJSONL writes one Placement per observed cell, in CellID order.
func WriteJSONL(w io.Writer, as []wfc.Assignment, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, a := range as {
		if !a.Observed {
			if o.Strict {
				return fmt.Errorf("%w: cell %d at %s", ErrUnobserved, a.Cell, a.Point)
			}
			continue
		}
		if err := enc.Encode(Placement{X: a.Point.X, Y: a.Point.Y, Z: a.Point.Z, State: a.State}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadJSONL decodes a placement list written by WriteJSONL.
func ReadJSONL(r io.Reader) ([]Placement, error) {
	var out []Placement
	dec := json.NewDecoder(r)
	for dec.More() {
		var p Placement
		if err := dec.Decode(&p); err != nil {
			return out, fmt.Errorf("export: decode placement %d: %w", len(out), err)
		}
		out = append(out, p)
	}
	return out, nil
}
