// Package normalizer turns a tracker's raw per-date sleep log into a sorted
// sequence of normalized records.
//
// Field-level problems never fail a run: a duration, date or clock string
// that cannot be read leaves the derived field empty and the record is
// still produced. Only an undecodable input document is an error.
package normalizer

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blaisecz/nightlog/internal/domain"
)

var (
	digitsPattern  = regexp.MustCompile(`\d+`)
	dateKeyPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	clockPattern   = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)
)

// Period is the AM/PM half of a 12-hour clock reading.
type Period string

const (
	AM Period = "AM"
	PM Period = "PM"
)

// Clock is a parsed 12-hour time converted to 24-hour form.
type Clock struct {
	Hour24 int
	Minute int
	Period Period
}

// ToMinutes reads a free-text duration such as "7h30", "7 h 30", "450" or
// "7h". Two or more numbers are hours and minutes; a single number is hours
// when the text contains an "h", minutes otherwise.
func ToMinutes(text *string) *int {
	if text == nil || *text == "" {
		return nil
	}

	tokens := digitsPattern.FindAllString(*text, -1)
	if len(tokens) == 0 {
		return nil
	}

	if len(tokens) >= 2 {
		hours, err := strconv.Atoi(tokens[0])
		if err != nil {
			return nil
		}
		minutes, err := strconv.Atoi(tokens[1])
		if err != nil {
			return nil
		}
		if hours > (math.MaxInt-minutes)/60 {
			return nil
		}
		total := hours*60 + minutes
		return &total
	}

	only, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil
	}
	if strings.ContainsAny(*text, "hH") {
		if only > math.MaxInt/60 {
			return nil
		}
		only *= 60
	}
	return &only
}

// ParseDateKey parses a D/M/YYYY key into midnight of that day.
// Days are only checked against 1-31, so 31/02/2025 is accepted and
// normalizes into March.
func ParseDateKey(key string) (time.Time, bool) {
	m := dateKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ParseTime12h parses "H:MM AM" style clock strings.
func ParseTime12h(s string) (Clock, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	period := Period(strings.ToUpper(m[3]))
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return Clock{}, false
	}

	if period == AM {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}

	return Clock{Hour24: hour, Minute: minute, Period: period}, true
}

// BuildFullTimes anchors bedtime and waketime on the date key. A PM bedtime
// followed by an AM waketime moves the waketime to the next day; no other
// rollover is inferred. Both results are nil unless every input parses.
func BuildFullTimes(dateKey string, bedtime, waketime *string) (*domain.NaiveTime, *domain.NaiveTime) {
	base, ok := ParseDateKey(dateKey)
	if !ok || bedtime == nil || waketime == nil {
		return nil, nil
	}

	bt, ok := ParseTime12h(*bedtime)
	if !ok {
		return nil, nil
	}
	wt, ok := ParseTime12h(*waketime)
	if !ok {
		return nil, nil
	}

	bed := time.Date(base.Year(), base.Month(), base.Day(), bt.Hour24, bt.Minute, 0, 0, time.UTC)

	wakeDay := base
	if bt.Period == PM && wt.Period == AM {
		wakeDay = wakeDay.AddDate(0, 0, 1)
	}
	wake := time.Date(wakeDay.Year(), wakeDay.Month(), wakeDay.Day(), wt.Hour24, wt.Minute, 0, 0, time.UTC)

	return &domain.NaiveTime{Time: bed}, &domain.NaiveTime{Time: wake}
}

// NormalizeEntry builds the normalized record for one date key.
func NormalizeEntry(dateKey string, entry domain.RawNightEntry) domain.NormalizedSleepRecord {
	bed, wake := BuildFullTimes(dateKey, entry.Bedtime, entry.Waketime)
	return domain.NormalizedSleepRecord{
		Date:            dateKey,
		Duration:        entry.Duration,
		DurationMinutes: ToMinutes(entry.Duration),
		MeanHeartRate:   entry.MeanHeartRate,
		Bedtime:         entry.Bedtime,
		Waketime:        entry.Waketime,
		Score:           entry.Score,
		BedtimeFull:     bed,
		WaketimeFull:    wake,
	}
}

// Normalize produces one record per date key, ordered by plain string
// comparison of the key.
//
// The order is lexicographic on the raw key, not chronological: "02/12/2025"
// sorts before "11/01/2025". Consumers that need calendar order should sort
// on BedtimeFull instead.
func Normalize(data domain.RawSleepData) domain.NormalizedData {
	sleeps := make([]domain.NormalizedSleepRecord, 0, len(data.Sleep))
	for key, entry := range data.Sleep {
		sleeps = append(sleeps, NormalizeEntry(key, entry))
	}

	sort.Slice(sleeps, func(i, j int) bool {
		return sleeps[i].Date < sleeps[j].Date
	})

	return domain.NormalizedData{
		User:   data.Identity(),
		Sleeps: sleeps,
	}
}

// Decode reads a raw tracker export. Any decoding failure is structural and
// wraps domain.ErrMalformedInput.
func Decode(r io.Reader) (domain.RawSleepData, error) {
	var data domain.RawSleepData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return domain.RawSleepData{}, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	return data, nil
}
