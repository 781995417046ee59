package service

import (
	"context"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/blaisecz/nightlog/internal/llm"
	"github.com/google/uuid"
)

// InsightsService generates an LLM narrative over a KPI comparison.
type InsightsService interface {
	// Generate creates sleep insights for a user and window.
	Generate(ctx context.Context, userID uuid.UUID, w kpi.Window) (*domain.InsightsResponse, error)
}

type insightsService struct {
	kpiService KPIService
	llmClient  llm.InsightsLLM
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(kpiService KPIService, llmClient llm.InsightsLLM) InsightsService {
	return &insightsService{
		kpiService: kpiService,
		llmClient:  llmClient,
	}
}

func (s *insightsService) Generate(ctx context.Context, userID uuid.UUID, w kpi.Window) (*domain.InsightsResponse, error) {
	if s.llmClient == nil {
		return nil, llm.ErrOpenAIUnavailable
	}

	cmp, err := s.kpiService.Compare(ctx, userID, w)
	if err != nil {
		return nil, err
	}

	output, err := s.llmClient.GenerateInsights(ctx, cmp)
	if err != nil {
		return nil, err
	}

	return &domain.InsightsResponse{
		Comparison: *cmp,
		Insights:   *output,
	}, nil
}
