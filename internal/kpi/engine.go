// Package kpi computes window statistics over normalized sleep records:
// linear means, circular time-of-day means, current-vs-previous deltas and
// per-night outlier flags. Everything here is a pure function of its inputs.
package kpi

import (
	"time"

	"github.com/blaisecz/nightlog/internal/domain"
)

const (
	DefaultWindowDays            = 30
	DefaultDurationThresholdPct  = 20.0
	DefaultScoreThresholdPct     = 20.0
	DefaultHeartRateThresholdPct = 15.0
)

// Config holds the window size and outlier thresholds used by an Engine.
type Config struct {
	WindowDays            int
	DurationThresholdPct  float64
	ScoreThresholdPct     float64
	HeartRateThresholdPct float64
}

func DefaultConfig() Config {
	return Config{
		WindowDays:            DefaultWindowDays,
		DurationThresholdPct:  DefaultDurationThresholdPct,
		ScoreThresholdPct:     DefaultScoreThresholdPct,
		HeartRateThresholdPct: DefaultHeartRateThresholdPct,
	}
}

// withDefaults replaces non-positive settings with the defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WindowDays <= 0 {
		c.WindowDays = d.WindowDays
	}
	if c.DurationThresholdPct <= 0 {
		c.DurationThresholdPct = d.DurationThresholdPct
	}
	if c.ScoreThresholdPct <= 0 {
		c.ScoreThresholdPct = d.ScoreThresholdPct
	}
	if c.HeartRateThresholdPct <= 0 {
		c.HeartRateThresholdPct = d.HeartRateThresholdPct
	}
	return c
}

// Engine computes KPIs with a fixed configuration. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Compute filters records to w and aggregates them.
func (e *Engine) Compute(records []domain.NormalizedSleepRecord, w Window) domain.WindowKPI {
	rows := Filter(records, w)

	var durations, heartRates, scores []float64
	var bedtimes, waketimes []time.Time
	for _, r := range rows {
		if r.DurationMinutes != nil {
			durations = append(durations, float64(*r.DurationMinutes))
		}
		if r.MeanHeartRate != nil {
			heartRates = append(heartRates, *r.MeanHeartRate)
		}
		if r.Score != nil {
			scores = append(scores, *r.Score)
		}
		if r.BedtimeFull != nil {
			bedtimes = append(bedtimes, r.BedtimeFull.Time)
		}
		if r.WaketimeFull != nil {
			waketimes = append(waketimes, r.WaketimeFull.Time)
		}
	}

	result := domain.WindowKPI{
		From:                w.From,
		To:                  w.To,
		Count:               len(rows),
		MeanDurationMinutes: AverageOf(durations),
		MeanHeartRate:       AverageOf(heartRates),
		MeanScore:           AverageOf(scores),
		MeanBedtimeMinutes:  MeanMinutesOfDay(bedtimes),
		MeanWaketimeMinutes: MeanMinutesOfDay(waketimes),
		Records:             rows,
	}
	result.MeanBedtime = clockString(result.MeanBedtimeMinutes)
	result.MeanWaketime = clockString(result.MeanWaketimeMinutes)

	return result
}

func clockString(minutes *float64) *string {
	if minutes == nil {
		return nil
	}
	s := FormatMinutes(*minutes)
	return &s
}

// Deltas compares two windows. Time-of-day deltas use the circular difference.
func Deltas(current, previous domain.WindowKPI) domain.KPIDeltas {
	return domain.KPIDeltas{
		DurationPct:  PercentChange(current.MeanDurationMinutes, previous.MeanDurationMinutes),
		HeartRatePct: PercentChange(current.MeanHeartRate, previous.MeanHeartRate),
		ScorePct:     PercentChange(current.MeanScore, previous.MeanScore),
		BedtimePct:   PercentChangeCircular(current.MeanBedtimeMinutes, previous.MeanBedtimeMinutes),
		WaketimePct:  PercentChangeCircular(current.MeanWaketimeMinutes, previous.MeanWaketimeMinutes),
	}
}

// Assess flags one record against the means of k. Duration and score are
// higher-is-better, heart rate is lower-is-better.
func (e *Engine) Assess(r domain.NormalizedSleepRecord, k domain.WindowKPI) domain.RecordAssessment {
	var duration *float64
	if r.DurationMinutes != nil {
		d := float64(*r.DurationMinutes)
		duration = &d
	}

	return domain.RecordAssessment{
		Date:      r.Date,
		Duration:  assess(duration, k.MeanDurationMinutes, HigherIsBetter, e.cfg.DurationThresholdPct),
		HeartRate: assess(r.MeanHeartRate, k.MeanHeartRate, LowerIsBetter, e.cfg.HeartRateThresholdPct),
		Score:     assess(r.Score, k.MeanScore, HigherIsBetter, e.cfg.ScoreThresholdPct),
	}
}

func assess(value, mean *float64, mode Mode, thresholdPct float64) domain.MetricAssessment {
	return domain.MetricAssessment{
		DeviationPct: PercentChange(value, mean),
		Bad:          IsOutlier(value, mean, mode, thresholdPct),
	}
}

// Compare builds the report for two already computed windows, assessing
// every night of the current one.
func (e *Engine) Compare(current, previous domain.WindowKPI) domain.KPIComparison {
	assessments := make([]domain.RecordAssessment, 0, len(current.Records))
	for _, r := range current.Records {
		assessments = append(assessments, e.Assess(r, current))
	}

	return domain.KPIComparison{
		Current:     current,
		Previous:    previous,
		Deltas:      Deltas(current, previous),
		Assessments: assessments,
	}
}

// CompareWindows computes the current window and the previous window of the
// same length from one record set.
func (e *Engine) CompareWindows(records []domain.NormalizedSleepRecord, current Window) domain.KPIComparison {
	return e.Compare(e.Compute(records, current), e.Compute(records, current.Previous()))
}
