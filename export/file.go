package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/wfc"
)

// Write dispatches to the writer of format f.
func Write(w io.Writer, f Format, d lattice.Dimensions, as []wfc.Assignment, opts ...Option) error {
	switch f {
	case FormatMVImport:
		return WriteMVImport(w, d, as, opts...)
	case FormatJSONL:
		return WriteJSONL(w, as, opts...)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Create writes the map to path in format f, creating parent directories.
// A ".zst" suffix compresses the output with zstd.
func Create(path string, f Format, d lattice.Dimensions, as []wfc.Assignment, opts ...Option) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	if !strings.HasSuffix(path, CompressedSuffix) {
		return Write(file, f, d, as, opts...)
	}
	enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := Write(enc, f, d, as, opts...); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Open opens an exported file for reading, decompressing ".zst" files.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, CompressedSuffix) {
		return file, nil
	}
	dec, err := zstd.NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &zstdFile{Decoder: dec, file: file}, nil
}

type zstdFile struct {
	*zstd.Decoder
	file *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.file.Close()
}
