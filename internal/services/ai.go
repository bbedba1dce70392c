package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// CampaignDraft is an AI-proposed campaign. Dates are day-granular.
type CampaignDraft struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

type rawCampaignDraft struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateCampaignDrafts turns a free-form marketing brief into campaign
// proposals using OpenAI GPT
func (s *AIService) GenerateCampaignDrafts(ctx context.Context, brief string) ([]CampaignDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	today := time.Now().Format("2006-01-02")
	prompt := fmt.Sprintf(`You are a marketing campaign planner. Draft concrete campaigns from the brief below.

Today's date: %s

Brief:
%s

Return a JSON array of drafts in this exact shape:
[
  {
    "name": "short campaign name",
    "description": "what the campaign does and for whom",
    "requirements": "what invited creators are expected to deliver",
    "start_date": "YYYY-MM-DD",
    "end_date": "YYYY-MM-DD"
  }
]

Rules:
- Return an empty array [] if the brief contains nothing actionable
- start_date must be today or later, and strictly before end_date
- Resolve relative timing ("next month", "over the summer") into concrete dates
- Return only JSON, no commentary`, today, brief)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var raw []rawCampaignDraft
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	drafts := make([]CampaignDraft, 0, len(raw))
	for _, r := range raw {
		start, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			continue
		}
		drafts = append(drafts, CampaignDraft{
			Name:         r.Name,
			Description:  r.Description,
			Requirements: r.Requirements,
			StartDate:    start,
			EndDate:      end,
		})
	}

	return drafts, nil
}
