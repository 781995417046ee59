package normalizer

import (
	"fmt"

	"github.com/blaisecz/nightlog/internal/domain"
)

// Report counts the field-level degradations of a normalization run.
type Report struct {
	Records int
	// Duration text present but without a usable number
	DurationUnparsed int
	// Date key not in D/M/YYYY form or out of range
	DateUnparsed int
	// A bedtime or waketime was given but no timestamps could be derived
	TimesUnresolved int
	// Records with every derived field present
	Complete int
}

// Summarize inspects normalized records and counts what degraded.
func Summarize(records []domain.NormalizedSleepRecord) Report {
	report := Report{Records: len(records)}
	for _, r := range records {
		complete := true

		if r.Duration != nil && r.DurationMinutes == nil {
			report.DurationUnparsed++
		}
		if r.DurationMinutes == nil {
			complete = false
		}

		if _, ok := ParseDateKey(r.Date); !ok {
			report.DateUnparsed++
			complete = false
		}

		if r.BedtimeFull == nil {
			complete = false
			if r.Bedtime != nil || r.Waketime != nil {
				report.TimesUnresolved++
			}
		}

		if complete {
			report.Complete++
		}
	}
	return report
}

func (r Report) String() string {
	return fmt.Sprintf("records=%d complete=%d duration_unparsed=%d date_unparsed=%d times_unresolved=%d",
		r.Records, r.Complete, r.DurationUnparsed, r.DateUnparsed, r.TimesUnresolved)
}
