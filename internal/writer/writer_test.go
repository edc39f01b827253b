package writer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/kjstillabower/tempplot/internal/testhelpers"
)

type stringSource string

func (s stringSource) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, string(s))
	return int64(n), err
}

var errEncode = errors.New("encode failed")

type failingSource struct{}

func (failingSource) WriteTo(w io.Writer) (int64, error) {
	_, _ = io.WriteString(w, "partial")
	return 7, errEncode
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSave_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "temperature_plot.png")

	n, err := Save(stringSource("png-bytes"), path)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if n != int64(len("png-bytes")) {
		t.Errorf("Save() n = %d, want %d", n, len("png-bytes"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("file content = %q", data)
	}
	if names := dirEntries(t, dir); len(names) != 1 {
		t.Errorf("dir entries = %v, want only the output", names)
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := testhelpers.WriteFile(t, dir, "temperature_plot.png", "old contents that are longer")

	if _, err := Save(stringSource("new"), path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("file content = %q, want new", data)
	}
}

func TestSave_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "temperature_plot.png")

	_, err := Save(stringSource("x"), path)
	if !errors.Is(err, ErrOutputUnwritable) {
		t.Errorf("Save() error = %v, want ErrOutputUnwritable", err)
	}
	testhelpers.AssertNoFile(t, path)
}

func TestSave_EncodeFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "temperature_plot.png")

	_, err := Save(failingSource{}, path)
	if !errors.Is(err, errEncode) {
		t.Fatalf("Save() error = %v, want errEncode", err)
	}
	testhelpers.AssertNoFile(t, path)
	if names := dirEntries(t, dir); len(names) != 0 {
		t.Errorf("temp file left behind: %v", names)
	}
}

func TestSave_EncodeFailureKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	path := testhelpers.WriteFile(t, dir, "temperature_plot.png", "previous")

	if _, err := Save(failingSource{}, path); err == nil {
		t.Fatal("Save() expected error")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "previous" {
		t.Errorf("previous output changed to %q", data)
	}
}

func TestSave_ReadOnlyDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(dir, 0o555); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	path := filepath.Join(dir, "temperature_plot.png")

	_, err := Save(stringSource("x"), path)
	if !errors.Is(err, ErrOutputUnwritable) {
		t.Errorf("Save() error = %v, want ErrOutputUnwritable", err)
	}
	if err != nil && !strings.Contains(err.Error(), "permission") {
		t.Errorf("Save() error = %v, want permission detail", err)
	}
}

type fullDisk struct{}

func (fullDisk) Write(p []byte) (int, error) {
	return 0, syscall.ENOSPC
}

func TestWriteAll_DestinationFailureIsUnwritable(t *testing.T) {
	_, err := writeAll(fullDisk{}, stringSource("png-bytes"))
	if !errors.Is(err, ErrOutputUnwritable) {
		t.Errorf("writeAll() error = %v, want ErrOutputUnwritable", err)
	}
	if !errors.Is(err, syscall.ENOSPC) {
		t.Errorf("writeAll() error = %v, want ENOSPC kept in chain", err)
	}
}

func TestWriteAll_EncoderFailureIsNotUnwritable(t *testing.T) {
	_, err := writeAll(io.Discard, failingSource{})
	if !errors.Is(err, errEncode) {
		t.Fatalf("writeAll() error = %v, want errEncode", err)
	}
	if errors.Is(err, ErrOutputUnwritable) {
		t.Errorf("writeAll() error = %v, encoder failure should not be ErrOutputUnwritable", err)
	}
}
