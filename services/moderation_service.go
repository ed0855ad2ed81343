package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// ModerationResult is the external analyzer's verdict on a piece of text.
// Score is 0-100, higher = safer.
type ModerationResult struct {
	Sentiment string   `json:"sentiment"`
	Score     int      `json:"score"`
	Flags     []string `json:"flags,omitempty"`
}

// TextAnalyzer scores chat text for safety and sentiment. The concrete
// scoring implementation is replaceable; callers only rely on the bounded
// score contract.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) (*ModerationResult, error)
}

// ModerationService calls a configured moderation endpoint over HTTP.
type ModerationService struct {
	client   *resty.Client
	endpoint string
}

var _ TextAnalyzer = (*ModerationService)(nil)

// NewModerationService builds a client for the given endpoint and API key.
// An empty endpoint yields a client whose Analyze always errors, which the
// chat service degrades to an unmoderated message.
func NewModerationService(endpoint, apiKey string) *ModerationService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &ModerationService{client: client, endpoint: endpoint}
}

// Analyze submits text to the moderation endpoint and returns its verdict.
func (ms *ModerationService) Analyze(ctx context.Context, text string) (*ModerationResult, error) {
	if ms.endpoint == "" {
		return nil, fmt.Errorf("moderation endpoint not configured")
	}

	var result ModerationResult
	resp, err := ms.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text}).
		SetResult(&result).
		Post(ms.endpoint)
	if err != nil {
		return nil, fmt.Errorf("moderation request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("moderation request failed: status %d", resp.StatusCode())
	}

	// Clamp out-of-contract scores rather than trusting the upstream.
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}

	log.Printf("Moderation verdict: sentiment=%s score=%d flags=%v", result.Sentiment, result.Score, result.Flags)
	return &result, nil
}
