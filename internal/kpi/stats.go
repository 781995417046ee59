package kpi

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

const (
	minutesPerDay  = 1440
	halfDayMinutes = minutesPerDay / 2

	cancelEpsilon = 1e-9
)

// AverageOf is the arithmetic mean of the finite values, nil when there are none.
func AverageOf(values []float64) *float64 {
	finite := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}

	mean, err := stats.Mean(finite)
	if err != nil {
		return nil
	}
	return &mean
}

// MeanMinutesOfDay is the circular mean of the wall-clock times of day,
// as minutes after midnight in [0, 1440). Samples either side of midnight
// average to midnight rather than noon. Nil when there are no samples.
func MeanMinutesOfDay(times []time.Time) *float64 {
	minutes := make([]float64, 0, len(times))
	for _, t := range times {
		minutes = append(minutes, float64(t.Hour()*60+t.Minute()))
	}
	return CircularMeanMinutes(minutes)
}

// CircularMeanMinutes averages minute-of-day samples on the 24-hour circle.
func CircularMeanMinutes(minutes []float64) *float64 {
	angles := make([]float64, 0, len(minutes))
	for _, m := range minutes {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			continue
		}
		angles = append(angles, 2*math.Pi*m/minutesPerDay)
	}
	if len(angles) == 0 {
		return nil
	}

	// Samples that cancel out have no direction; report midnight.
	var sumSin, sumCos float64
	for _, a := range angles {
		sumSin += math.Sin(a)
		sumCos += math.Cos(a)
	}
	if math.Hypot(sumSin, sumCos) < cancelEpsilon*float64(len(angles)) {
		zero := 0.0
		return &zero
	}

	theta := stat.CircularMean(angles, nil)
	mean := math.Mod(theta+2*math.Pi, 2*math.Pi) * minutesPerDay / (2 * math.Pi)
	if mean >= minutesPerDay {
		mean -= minutesPerDay
	}
	return &mean
}

// FormatMinutes renders minutes after midnight as HH:MM, rounding to the
// nearest minute and wrapping into the day.
func FormatMinutes(minutes float64) string {
	m := int(math.Round(minutes))
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// PercentChange is (current - previous) / |previous| * 100. Nil when either
// side is missing or not finite, or previous is zero.
func PercentChange(current, previous *float64) *float64 {
	if !finite(current) || !finite(previous) || *previous == 0 {
		return nil
	}
	pct := (*current - *previous) / math.Abs(*previous) * 100
	return &pct
}

// CircularMinutesDelta is current - previous taken the short way round the
// clock, so 23:50 after 00:10 is -20 rather than +1420. A difference of
// exactly half a day keeps its sign.
func CircularMinutesDelta(current, previous float64) float64 {
	diff := current - previous
	if diff > halfDayMinutes {
		diff -= minutesPerDay
	}
	if diff < -halfDayMinutes {
		diff += minutesPerDay
	}
	return diff
}

// PercentChangeCircular expresses the wrapped minute delta as a percentage
// of the previous minute-of-day value.
func PercentChangeCircular(current, previous *float64) *float64 {
	if !finite(current) || !finite(previous) || *previous == 0 {
		return nil
	}
	pct := CircularMinutesDelta(*current, *previous) / math.Abs(*previous) * 100
	return &pct
}

// Mode says which direction of deviation from the mean is bad.
type Mode int

const (
	HigherIsBetter Mode = iota
	LowerIsBetter
)

func (m Mode) String() string {
	switch m {
	case HigherIsBetter:
		return "higher-is-better"
	case LowerIsBetter:
		return "lower-is-better"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// IsOutlier flags value when it deviates from mean by more than thresholdPct
// percent in the bad direction for mode. Missing values and a missing or
// zero mean are never flagged.
func IsOutlier(value, mean *float64, mode Mode, thresholdPct float64) bool {
	pct := PercentChange(value, mean)
	if pct == nil {
		return false
	}
	if mode == LowerIsBetter {
		return *pct > thresholdPct
	}
	return *pct < -thresholdPct
}
