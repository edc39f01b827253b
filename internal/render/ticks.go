package render

import (
	"math"
	"time"

	"gonum.org/v1/plot"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	secondsPerDay  = 24 * 60 * 60
	maxDateTicks   = 10
)

var dayStepCandidates = []int{1, 2, 7, 14, 28, 91, 182, 365}

// dateTicks places major ticks on UTC midnights so every label names a distinct day.
// Ranges shorter than a day fall back to gonum's time ticks with a time-of-day layout.
type dateTicks struct{}

var _ plot.Ticker = dateTicks{}

func (dateTicks) Ticks(min, max float64) []plot.Tick {
	if max-min < secondsPerDay {
		return plot.TimeTicks{Format: dateTimeLayout, Time: plot.UnixTimeIn(time.UTC)}.Ticks(min, max)
	}

	days := (max - min) / secondsPerDay
	step := dayStepCandidates[len(dayStepCandidates)-1]
	for _, s := range dayStepCandidates {
		if days/float64(s) <= maxDateTicks {
			step = s
			break
		}
	}
	for days/float64(step) > maxDateTicks {
		step *= 2
	}

	first := time.Unix(int64(math.Ceil(min)), 0).UTC()
	day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(first) {
		day = day.AddDate(0, 0, 1)
	}

	var ticks []plot.Tick
	for ; float64(day.Unix()) <= max; day = day.AddDate(0, 0, step) {
		ticks = append(ticks, plot.Tick{Value: float64(day.Unix()), Label: day.Format(dateLayout)})
	}
	return ticks
}
