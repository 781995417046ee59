package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const systemPrompt = `You are a non-medical sleep tracking assistant.

You receive sleep KPIs for a single user over two consecutive windows of equal length: "current" and "previous". Base your conclusions only on the provided data.

Your goals:
- Describe the current window in clear, neutral language.
- Compare it with the previous window using the provided percent deltas.
- Mention nights flagged as outliers when there are any.
- Give practical, behavioral suggestions to improve sleep habits.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Bedtime and waketime means are circular clock means in HH:MM. A negative bedtime delta means an earlier bedtime.
- A null value means there was no data. If data is limited, say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the current window against the previous one.",
  "observations": ["3-6 items about duration, heart rate, score, bedtime and waketime"],
  "guidance": ["3-5 concrete, non-medical suggestions tailored to these numbers"]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's sleep KPIs.

- "current" and "previous" hold the window bounds, the number of nights and the means.
- "deltas" holds percent changes of current against previous.
- "flagged_nights" lists current nights whose duration, heart rate or score deviate in the bad direction.

JSON:

%s

Based on this data, respond in the required JSON format.`

// InsightsLLM is the interface for generating sleep insights using an LLM.
type InsightsLLM interface {
	// GenerateInsights takes a KPI comparison and returns LLM-generated insights.
	GenerateInsights(ctx context.Context, comparison *domain.KPIComparison) (*domain.LLMInsightsOutput, error)
}

// OpenAIClient implements InsightsLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for generating insights.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

type windowSummary struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	Nights       int      `json:"nights"`
	DurationMin  *float64 `json:"mean_duration_min"`
	HeartRate    *float64 `json:"mean_hr"`
	Score        *float64 `json:"mean_score"`
	MeanBedtime  *string  `json:"mean_bedtime"`
	MeanWaketime *string  `json:"mean_waketime"`
}

type promptPayload struct {
	Current       windowSummary             `json:"current"`
	Previous      windowSummary             `json:"previous"`
	Deltas        domain.KPIDeltas          `json:"deltas"`
	FlaggedNights []domain.RecordAssessment `json:"flagged_nights"`
}

func summarize(k domain.WindowKPI) windowSummary {
	return windowSummary{
		From:         k.From.Format("2006-01-02"),
		To:           k.To.Format("2006-01-02"),
		Nights:       k.Count,
		DurationMin:  k.MeanDurationMinutes,
		HeartRate:    k.MeanHeartRate,
		Score:        k.MeanScore,
		MeanBedtime:  k.MeanBedtime,
		MeanWaketime: k.MeanWaketime,
	}
}

// buildPayload drops the raw nights and keeps only flagged assessments.
func buildPayload(cmp *domain.KPIComparison) promptPayload {
	flagged := make([]domain.RecordAssessment, 0)
	for _, a := range cmp.Assessments {
		if a.Duration.Bad || a.HeartRate.Bad || a.Score.Bad {
			flagged = append(flagged, a)
		}
	}
	return promptPayload{
		Current:       summarize(cmp.Current),
		Previous:      summarize(cmp.Previous),
		Deltas:        cmp.Deltas,
		FlaggedNights: flagged,
	}
}

// GenerateInsights calls OpenAI to generate sleep insights.
func (c *OpenAIClient) GenerateInsights(ctx context.Context, comparison *domain.KPIComparison) (*domain.LLMInsightsOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(buildPayload(comparison), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	return parseOutput(resp.Choices[0].Message.Content)
}

func parseOutput(content string) (*domain.LLMInsightsOutput, error) {
	var output domain.LLMInsightsOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	return &output, nil
}
