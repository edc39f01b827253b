package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names the pipeline reads. Other columns are loaded and ignored.
const (
	DateColumn        = "date"
	TemperatureColumn = "temperature_celsius"
)

var (
	// ErrInputNotFound is returned when the input CSV does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrInputUnreadable is returned when the input exists but cannot be opened or read.
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrMalformedCSV is returned for structural CSV problems: bad quoting,
	// inconsistent field counts, or no header line at all.
	ErrMalformedCSV = errors.New("malformed csv")

	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrNoRows is returned when the file has a header but no data rows.
	ErrNoRows = errors.New("no data rows")
)

const utf8BOM = "\ufeff"

// Load reads the CSV at path into a DataFrame with every column held as strings.
// Type coercion is left to the normalize package.
func Load(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses CSV from r. See Load.
func Read(r io.Reader) (dataframe.DataFrame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: empty file, no header", ErrMalformedCSV)
	}

	header := records[0]
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}
	for _, col := range []string{DateColumn, TemperatureColumn} {
		if !contains(header, col) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %q (have %s)", ErrMissingColumn, col, strings.Join(header, ","))
		}
	}
	if len(records) == 1 {
		return dataframe.DataFrame{}, ErrNoRows
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrMalformedCSV, df.Err)
	}
	return df, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
