package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClient_EmptyKey(t *testing.T) {
	assert.Nil(t, NewOpenAIClient("", "gpt-4o-mini"))

	c := NewOpenAIClient("key", "")
	require.NotNil(t, c)
	assert.Equal(t, "gpt-4o-mini", c.model)
}

func TestGenerateInsights_NilClient(t *testing.T) {
	var c *OpenAIClient
	_, err := c.GenerateInsights(context.Background(), &domain.KPIComparison{})
	assert.True(t, errors.Is(err, ErrOpenAIUnavailable))
}

func TestBuildPayload(t *testing.T) {
	bedtime := "23:10"
	cmp := &domain.KPIComparison{
		Current: domain.WindowKPI{
			From:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			To:          time.Date(2025, 5, 30, 23, 59, 59, 0, time.UTC),
			Count:       2,
			MeanBedtime: &bedtime,
			Records:     []domain.NormalizedSleepRecord{{Date: "01/05/2025"}, {Date: "02/05/2025"}},
		},
		Assessments: []domain.RecordAssessment{
			{Date: "01/05/2025"},
			{Date: "02/05/2025", HeartRate: domain.MetricAssessment{Bad: true}},
		},
	}

	p := buildPayload(cmp)
	assert.Equal(t, "2025-05-01", p.Current.From)
	assert.Equal(t, "2025-05-30", p.Current.To)
	assert.Equal(t, 2, p.Current.Nights)
	assert.Equal(t, &bedtime, p.Current.MeanBedtime)
	require.Len(t, p.FlaggedNights, 1)
	assert.Equal(t, "02/05/2025", p.FlaggedNights[0].Date)
}

func TestParseOutput(t *testing.T) {
	out, err := parseOutput(`{"summary":"ok","observations":["a"],"guidance":["b"]}`)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Summary)
	assert.Equal(t, []string{"a"}, out.Observations)

	_, err = parseOutput("not json")
	assert.True(t, errors.Is(err, ErrOpenAIResponse))
}
