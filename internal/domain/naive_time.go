package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// NaiveLayout renders a wall-clock timestamp without any zone designator.
const NaiveLayout = "2006-01-02T15:04:05"

// NaiveTime is a wall-clock date and time with no timezone semantics.
// The embedded time.Time is always anchored in UTC so that arithmetic and
// comparisons between naive values never shift the clock reading.
type NaiveTime struct {
	time.Time
}

// NewNaiveTime copies the wall-clock fields of t into a UTC-anchored value.
func NewNaiveTime(t time.Time) *NaiveTime {
	return &NaiveTime{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// ParseNaiveTime parses a value written with NaiveLayout.
func ParseNaiveTime(s string) (*NaiveTime, error) {
	t, err := time.Parse(NaiveLayout, s)
	if err != nil {
		return nil, err
	}
	return &NaiveTime{Time: t}, nil
}

func (t NaiveTime) String() string {
	return t.Format(NaiveLayout)
}

// MinutesOfDay returns minutes since midnight in [0, 1440).
func (t NaiveTime) MinutesOfDay() int {
	return t.Hour()*60 + t.Minute()
}

func (t NaiveTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(NaiveLayout))
}

func (t *NaiveTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseNaiveTime(s)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// Value stores the wall clock as a timestamp without time zone.
func (t NaiveTime) Value() (driver.Value, error) {
	return t.Time, nil
}

func (t *NaiveTime) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		*t = *NewNaiveTime(v)
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into NaiveTime", value)
	}
}

func (t *NaiveTime) scanString(s string) error {
	for _, layout := range []string{NaiveLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = *NewNaiveTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as NaiveTime", s)
}
