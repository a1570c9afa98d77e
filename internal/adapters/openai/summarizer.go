// Package openai implements the summarization capability with the OpenAI
// chat completions API.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/utils"
)

const systemInstruction = "Summarize the following text concisely, preserving key information without adding explanations or commentary."

// Summarizer is an OpenAI implementation of the Summarizer interface.
type Summarizer struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	maxInputSize  int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewSummarizer creates a new OpenAI summarizer.
func NewSummarizer(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	maxInputSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Summarizer {
	return &Summarizer{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		maxInputSize:  maxInputSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Summarize condenses text. Empty input returns the "no content" sentinel
// without calling the API.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return core.SentinelNoContent, nil
	}

	processed := s.textProcessor.ProcessText(text, s.maxInputSize)

	req := openai.ChatCompletionRequest{
		Model: s.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: processed,
			},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &core.SummarizationError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &core.SummarizationError{Provider: "openai", Err: fmt.Errorf("empty response")}
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.logger.Debug("Summarized text",
		zap.String("model", s.modelName),
		zap.Int("input_size", len(processed)),
		zap.Int("summary_size", len(summary)))
	return summary, nil
}
