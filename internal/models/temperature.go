package models

import "time"

// TemperatureSeries is the normalized reading table: Dates[i] pairs with Celsius[i],
// in the order the rows appeared in the input file.
type TemperatureSeries struct {
	Dates   []time.Time `json:"dates"`
	Celsius []float64   `json:"celsius"`
}

// Len returns the number of readings.
func (s TemperatureSeries) Len() int {
	return len(s.Dates)
}

// Span returns the earliest and latest dates in the series. Both are zero for an empty series.
func (s TemperatureSeries) Span() (first, last time.Time) {
	for i, d := range s.Dates {
		if i == 0 || d.Before(first) {
			first = d
		}
		if i == 0 || d.After(last) {
			last = d
		}
	}
	return first, last
}
