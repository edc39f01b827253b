package writer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrOutputUnwritable is returned when the image cannot be written to its destination.
var ErrOutputUnwritable = errors.New("output unwritable")

// Save writes src to path through a temp file in the same directory and renames it
// into place, replacing any existing file. On failure nothing is left at path.
// Returns the number of bytes written.
func Save(src io.WriterTo, path string) (n int64, err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	n, err = writeAll(tmp, src)
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
	}
	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
	}
	return n, nil
}

// errWriter remembers the first error from the destination so disk failures can be
// told apart from encoder failures.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	n, err := e.w.Write(p)
	if err != nil && e.err == nil {
		e.err = err
	}
	return n, err
}

// writeAll streams src into dst. A failing dst is ErrOutputUnwritable; any other
// error comes from src and is returned as-is.
func writeAll(dst io.Writer, src io.WriterTo) (int64, error) {
	ew := &errWriter{w: dst}
	n, err := src.WriteTo(ew)
	if ew.err != nil {
		return n, fmt.Errorf("%w: %w", ErrOutputUnwritable, ew.err)
	}
	if err != nil {
		return n, fmt.Errorf("encode: %w", err)
	}
	return n, nil
}
