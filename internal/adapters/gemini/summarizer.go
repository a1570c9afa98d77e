// Package gemini implements the summarization capability with Google
// Gemini models.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/utils"
)

const systemInstruction = "Summarize the following text concisely, preserving key information without adding explanations or commentary."

// Summarizer is a Gemini implementation of the Summarizer interface.
type Summarizer struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxInputSize  int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewSummarizer creates a new Gemini summarizer.
func NewSummarizer(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	maxInputSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*Summarizer, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Summarizer{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxInputSize:  maxInputSize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Close closes the underlying Gemini client.
func (s *Summarizer) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Summarize condenses text. Empty input returns the "no content" sentinel
// without calling the API.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return core.SentinelNoContent, nil
	}

	processed := s.textProcessor.ProcessText(text, s.maxInputSize)
	prompt := systemInstruction + "\n\n" + processed

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &core.SummarizationError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &core.SummarizationError{Provider: "gemini", Err: fmt.Errorf("empty response")}
	}

	summary := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	s.logger.Debug("Summarized text",
		zap.String("model", s.modelName),
		zap.Int("input_size", len(processed)),
		zap.Int("summary_size", len(summary)))
	return summary, nil
}
