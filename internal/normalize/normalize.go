package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/go-gota/gota/dataframe"

	"github.com/kjstillabower/tempplot/internal/loader"
	"github.com/kjstillabower/tempplot/internal/models"
)

var (
	// ErrBadDate is returned when a date cell cannot be parsed. One bad row fails the whole table.
	ErrBadDate = errors.New("unparseable date")

	// ErrBadTemperature is returned when a temperature cell is not a finite number.
	ErrBadTemperature = errors.New("unparseable temperature")
)

// Normalize coerces the date and temperature_celsius columns of df into a typed series.
// Dates without a zone are read as UTC. Row order, duplicate dates and extreme
// temperatures are preserved as-is.
func Normalize(df dataframe.DataFrame) (models.TemperatureSeries, error) {
	dates := df.Col(loader.DateColumn)
	if dates.Err != nil {
		return models.TemperatureSeries{}, fmt.Errorf("%w: %v", loader.ErrMissingColumn, dates.Err)
	}
	temps := df.Col(loader.TemperatureColumn)
	if temps.Err != nil {
		return models.TemperatureSeries{}, fmt.Errorf("%w: %v", loader.ErrMissingColumn, temps.Err)
	}

	rawDates := dates.Records()
	rawTemps := temps.Records()
	out := models.TemperatureSeries{
		Dates:   make([]time.Time, len(rawDates)),
		Celsius: make([]float64, len(rawTemps)),
	}
	for i, s := range rawDates {
		t, err := ParseDate(s)
		if err != nil {
			return models.TemperatureSeries{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		out.Dates[i] = t
	}
	for i, s := range rawTemps {
		c, err := ParseTemperature(s)
		if err != nil {
			return models.TemperatureSeries{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		out.Celsius[i] = c
	}
	return out, nil
}

// ParseDate parses one date cell using format detection (ISO 8601, RFC 3339,
// yyyy/mm/dd, mm/dd/yyyy, "Jan 2, 2006" and similar).
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if !strings.ContainsFunc(v, unicode.IsDigit) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	t, err := dateparse.ParseIn(v, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrBadDate, s, err)
	}
	// dateparse stops at a recognized prefix and ignores trailing text.
	if w := strayWord(v); w != "" {
		return time.Time{}, fmt.Errorf("%w: %q: unexpected word %q", ErrBadDate, s, w)
	}
	return t.UTC(), nil
}

// dateWords are the alphabetic tokens a date cell may contain, lowercased.
var dateWords = func() map[string]bool {
	m := map[string]bool{}
	for _, w := range []string{
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		"mon", "tue", "tues", "wed", "thu", "thur", "thurs", "fri", "sat", "sun",
		"am", "pm", "t", "z", "st", "nd", "rd", "th",
		"utc", "gmt", "ut", "est", "edt", "cst", "cdt", "mst", "mdt", "pst", "pdt",
		"akst", "akdt", "hst", "ast", "adt", "nst", "ndt", "bst", "ist", "wet", "west",
		"cet", "cest", "eet", "eest", "msk", "jst", "kst", "hkt", "sgt", "aest", "aedt",
		"acst", "acdt", "awst", "nzst", "nzdt",
	} {
		m[w] = true
	}
	return m
}()

// strayWord returns the first run of letters in s that is not a month, weekday,
// meridiem, ISO separator, ordinal suffix or zone abbreviation.
func strayWord(s string) string {
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if !dateWords[strings.ToLower(w)] {
			return w
		}
	}
	return ""
}

// ParseTemperature parses one temperature cell as a finite float64.
func ParseTemperature(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTemperature, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrBadTemperature, s)
	}
	return v, nil
}
