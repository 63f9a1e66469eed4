// internal/extraction/gemini.go
package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"booking-sync/internal/common/config"
	commonerrors "booking-sync/internal/common/errors"
	"booking-sync/internal/common/logger"
)

// GeminiOracle extracts candidate fields with the Gemini API.
type GeminiOracle struct {
	model        *genai.GenerativeModel
	logger       logger.Logger
	maxBodyChars int
	timeout      time.Duration
}

func NewGeminiOracle(ctx context.Context, cfg config.ExtractionConfig, log logger.Logger) (*GeminiOracle, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiOracle{
		model:        client.GenerativeModel(cfg.Gemini.Model),
		logger:       log.WithFields(map[string]interface{}{"oracle": "gemini", "model": cfg.Gemini.Model}),
		maxBodyChars: cfg.MaxBodyChars,
		timeout:      cfg.RequestTimeout(),
	}, nil
}

// Extract runs one oracle attempt. Decode failures are returned as errors;
// the orchestrator counts them as extraction absence, not as fatal.
func (g *GeminiOracle) Extract(ctx context.Context, body, subject string, amendmentHint bool) (*RawExtraction, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := buildPrompt(body, subject, amendmentHint, g.maxBodyChars)

	resp, err := g.model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, commonerrors.NewExtractionTimeoutError()
		}
		return nil, commonerrors.NewExtractionFailedError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, commonerrors.NewExtractionInvalidOutputError("empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	raw, err := DecodeResponse(sb.String())
	if err != nil {
		g.logger.Debug("undecodable oracle response", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, commonerrors.NewExtractionInvalidOutputError(err.Error())
	}
	return raw, nil
}
