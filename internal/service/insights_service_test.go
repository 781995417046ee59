package service

import (
	"context"
	"errors"
	"testing"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/blaisecz/nightlog/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightsService_Generate(t *testing.T) {
	fx := newKPIFixture(t)
	mock := &MockInsightsLLM{output: &domain.LLMInsightsOutput{Summary: "steady", Guidance: []string{"keep going"}}}
	svc := NewInsightsService(fx.svc, mock)

	resp, err := svc.Generate(context.Background(), fx.user.ID, mayWindow())
	require.NoError(t, err)
	assert.Equal(t, "steady", resp.Insights.Summary)
	assert.Equal(t, 3, resp.Comparison.Current.Count)
	require.NotNil(t, mock.received)
	assert.Equal(t, 1, mock.received.Previous.Count)
}

func TestInsightsService_Generate_Errors(t *testing.T) {
	fx := newKPIFixture(t)
	ctx := context.Background()

	_, err := NewInsightsService(fx.svc, nil).Generate(ctx, fx.user.ID, mayWindow())
	assert.True(t, errors.Is(err, llm.ErrOpenAIUnavailable))

	failing := &MockInsightsLLM{err: llm.ErrOpenAIRequest}
	_, err = NewInsightsService(fx.svc, failing).Generate(ctx, fx.user.ID, mayWindow())
	assert.True(t, errors.Is(err, llm.ErrOpenAIRequest))

	w := mayWindow()
	_, err = NewInsightsService(fx.svc, failing).Generate(ctx, fx.user.ID, kpi.Window{From: w.To, To: w.From})
	assert.True(t, errors.Is(err, domain.ErrInvalidWindow))
}
