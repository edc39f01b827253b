package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Row is one climate reading as it appears in the input file.
type Row struct {
	Date        string
	Temperature string
}

// ThreeDayRows is the canonical fixture: 2024-01-01..03 at 5.0, 7.2, 6.1.
var ThreeDayRows = []Row{
	{"2024-01-01", "5.0"},
	{"2024-01-02", "7.2"},
	{"2024-01-03", "6.1"},
}

// ClimateCSV renders rows under the standard date,temperature_celsius header.
func ClimateCSV(rows ...Row) string {
	var b strings.Builder
	b.WriteString("date,temperature_celsius\n")
	for _, r := range rows {
		b.WriteString(r.Date)
		b.WriteByte(',')
		b.WriteString(r.Temperature)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteFile writes content to dir/name, creating parent directories, and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// WriteClimateCSV writes rows to dir/data/climate_data.csv and returns the path.
func WriteClimateCSV(t *testing.T, dir string, rows ...Row) string {
	t.Helper()
	return WriteFile(t, dir, filepath.Join("data", "climate_data.csv"), ClimateCSV(rows...))
}

// AssertNoFile fails the test if path exists.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected no file at %s", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("stat %s: %v", path, err)
	}
}
