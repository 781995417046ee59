package domain

import "time"

// WindowKPI aggregates the nights falling inside one window.
// @Description Aggregate KPIs for a window. Means are null when no night contributes.
type WindowKPI struct {
	// Window start (inclusive)
	From time.Time `json:"from" example:"2025-04-12T00:00:00Z"`
	// Window end (inclusive)
	To time.Time `json:"to" example:"2025-05-11T23:59:59Z"`
	// Number of nights in the window
	Count int `json:"count" example:"28"`
	// Mean duration in minutes
	MeanDurationMinutes *float64 `json:"mean_duration_min" example:"452.5"`
	// Mean heart rate in bpm
	MeanHeartRate *float64 `json:"mean_hr" example:"55.2"`
	// Mean tracker score
	MeanScore *float64 `json:"mean_score" example:"80.1"`
	// Circular mean bedtime as minutes after midnight
	MeanBedtimeMinutes *float64 `json:"mean_bedtime_min" example:"1395.4"`
	// Circular mean bedtime (HH:MM)
	MeanBedtime *string `json:"mean_bedtime" example:"23:15"`
	// Circular mean waketime as minutes after midnight
	MeanWaketimeMinutes *float64 `json:"mean_waketime_min" example:"452.0"`
	// Circular mean waketime (HH:MM)
	MeanWaketime *string `json:"mean_waketime" example:"07:32"`
	// Nights that fell inside the window
	Records []NormalizedSleepRecord `json:"records"`
}

// KPIDeltas holds current-vs-previous percent changes.
// @Description Percent change of each KPI against the previous window. Null when undefined.
type KPIDeltas struct {
	DurationPct  *float64 `json:"duration_pct" example:"4.2"`
	HeartRatePct *float64 `json:"hr_pct" example:"-1.5"`
	ScorePct     *float64 `json:"score_pct" example:"2.0"`
	// Shortest signed rotation of the mean bedtime relative to the previous mean
	BedtimePct *float64 `json:"bedtime_pct" example:"-1.4"`
	// Shortest signed rotation of the mean waketime relative to the previous mean
	WaketimePct *float64 `json:"waketime_pct" example:"0.7"`
}

// MetricAssessment compares one value of a night against the window mean.
type MetricAssessment struct {
	// Deviation from the window mean in percent
	DeviationPct *float64 `json:"deviation_pct" example:"-33.3"`
	// True when the deviation crosses the configured threshold in the bad direction
	Bad bool `json:"bad" example:"true"`
}

// RecordAssessment flags a single night against its window means.
// @Description Per-night outlier flags against the current window.
type RecordAssessment struct {
	Date      string           `json:"date" example:"11/05/2025"`
	Duration  MetricAssessment `json:"duration"`
	HeartRate MetricAssessment `json:"hr"`
	Score     MetricAssessment `json:"score"`
}

// KPIComparison is the full report for a current window and the one before it.
// @Description Current and previous window KPIs with deltas and per-night flags.
type KPIComparison struct {
	Current     WindowKPI          `json:"current"`
	Previous    WindowKPI          `json:"previous"`
	Deltas      KPIDeltas          `json:"deltas"`
	Assessments []RecordAssessment `json:"assessments"`
}

// LLMInsightsOutput contains the structured output from the LLM.
// @Description LLM-generated narrative over a KPI comparison.
type LLMInsightsOutput struct {
	// Summary of the comparison (2-3 sentences)
	Summary string `json:"summary" example:"Your nights were slightly longer than the previous month..."`
	// Observations about patterns (3-6 items)
	Observations []string `json:"observations" example:"[\"Mean bedtime moved 20 minutes earlier\"]"`
	// Actionable guidance (3-5 items)
	Guidance []string `json:"guidance" example:"[\"Keep the earlier bedtime on weekends too\"]"`
}

// InsightsResponse is the response for the insights endpoint.
// @Description KPI comparison with an LLM narrative.
type InsightsResponse struct {
	Comparison KPIComparison     `json:"comparison"`
	Insights   LLMInsightsOutput `json:"insights"`
	// OTEL trace ID of the request, when tracing is enabled
	TraceID string `json:"trace_id,omitempty" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
}
