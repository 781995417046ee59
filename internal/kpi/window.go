package kpi

import (
	"fmt"
	"time"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/normalizer"
)

// Window is a closed interval of naive wall-clock time.
type Window struct {
	From time.Time
	To   time.Time
}

// Naive re-anchors the wall clock of t in UTC so it can be compared with
// normalized timestamps.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DayWindow spans from the start of from's day to the end of to's day.
func DayWindow(from, to time.Time) Window {
	return Window{From: startOfDay(from), To: endOfDay(to)}
}

// TrailingWindow covers the days calendar days ending with end's day.
func TrailingWindow(end time.Time, days int) Window {
	if days < 1 {
		days = 1
	}
	return DayWindow(end.AddDate(0, 0, -(days - 1)), end)
}

// Days is the number of calendar days the window touches.
func (w Window) Days() int {
	span := startOfDay(w.To).Sub(startOfDay(w.From))
	return int(span.Hours()/24+0.5) + 1
}

// Previous returns the window of the same number of days that ends on the
// day before w starts.
func (w Window) Previous() Window {
	prevEnd := endOfDay(w.From.AddDate(0, 0, -1))
	return Window{
		From: startOfDay(prevEnd.AddDate(0, 0, -(w.Days() - 1))),
		To:   prevEnd,
	}
}

// Contains reports whether t lies in the window, both bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

func (w Window) Validate() error {
	if w.From.IsZero() || w.To.IsZero() || w.To.Before(w.From) {
		return fmt.Errorf("%w: from %s to %s", domain.ErrInvalidWindow, w.From.Format(time.RFC3339), w.To.Format(time.RFC3339))
	}
	return nil
}

// PreferredTime picks the timestamp a record is placed by: bedtime, then
// waketime, then the date key read as a plain day.
func PreferredTime(r domain.NormalizedSleepRecord) (time.Time, bool) {
	if r.BedtimeFull != nil {
		return r.BedtimeFull.Time, true
	}
	if r.WaketimeFull != nil {
		return r.WaketimeFull.Time, true
	}
	return normalizer.ParseDateKey(r.Date)
}

// Filter keeps the records whose preferred time falls in w, preserving order.
func Filter(records []domain.NormalizedSleepRecord, w Window) []domain.NormalizedSleepRecord {
	out := make([]domain.NormalizedSleepRecord, 0, len(records))
	for _, r := range records {
		if t, ok := PreferredTime(r); ok && w.Contains(t) {
			out = append(out, r)
		}
	}
	return out
}
