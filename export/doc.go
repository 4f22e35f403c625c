// Package export writes collapsed maps as placement lists.
//
// Two formats are supported:
//
//   - mv_import: the MagicaVoxel import list. A comment line, a header
//     "mv_import <size>" and one "x y z <path>" line per observed cell,
//     where coordinates are scaled by the tile size and <path> is the
//     absolute path of <vox dir>/<state>.vox.
//   - jsonl: one {"x","y","z","state"} object per observed cell.
//
// Unobserved cells are skipped unless WithStrict is set, in which case the
// first one aborts the write with ErrUnobserved. Create writes to a file and
// compresses it with zstd when the path ends in ".zst".
package export
