// Package bedrock implements the summarization capability with Amazon
// Bedrock text models.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/utils"
)

const systemInstruction = "Summarize the following text concisely, preserving key information without adding explanations or commentary."

// Summarizer is a Bedrock implementation of the Summarizer interface.
type Summarizer struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTokens     int
	temperature   float32
	maxInputSize  int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewSummarizer creates a new Bedrock summarizer.
func NewSummarizer(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	maxInputSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Summarizer {
	return &Summarizer{
		client:        client,
		modelID:       modelID,
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
	prompt := systemInstruction + "\n\n" + processed

	payload, err := s.requestPayload(prompt)
	if err != nil {
		return "", &core.SummarizationError{Provider: "bedrock", Err: err}
	}

	resp, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &s.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", &core.SummarizationError{Provider: "bedrock", Err: err}
	}

	summary, err := s.responseText(resp.Body)
	if err != nil {
		return "", &core.SummarizationError{Provider: "bedrock", Err: err}
	}

	summary = strings.TrimSpace(summary)
	s.logger.Debug("Summarized text",
		zap.String("model", s.modelID),
		zap.Int("input_size", len(processed)),
		zap.Int("summary_size", len(summary)))
	return summary, nil
}

// requestPayload builds the model-family-specific request body.
func (s *Summarizer) requestPayload(prompt string) ([]byte, error) {
	if s.isAnthropicModel() {
		return json.Marshal(map[string]interface{}{
			"prompt":               prompt,
			"max_tokens_to_sample": s.maxTokens,
			"temperature":          s.temperature,
		})
	}
	if s.isAmazonTitanModel() {
		return json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": s.maxTokens,
				"temperature":   s.temperature,
			},
		})
	}
	return json.Marshal(map[string]interface{}{
		"prompt":      prompt,
		"max_tokens":  s.maxTokens,
		"temperature": s.temperature,
	})
}

// responseText extracts the completion from the model-family-specific
// response body.
func (s *Summarizer) responseText(body []byte) (string, error) {
	if s.isAnthropicModel() {
		var resp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		return resp.Completion, nil
	}
	if s.isAmazonTitanModel() {
		var resp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(resp.Results) == 0 {
			return "", fmt.Errorf("empty response from Titan model")
		}
		return resp.Results[0].OutputText, nil
	}

	var resp struct {
		Output   string `json:"output"`
		Text     string `json:"text"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	switch {
	case resp.Output != "":
		return resp.Output, nil
	case resp.Text != "":
		return resp.Text, nil
	case resp.Response != "":
		return resp.Response, nil
	default:
		return string(body), nil
	}
}

func (s *Summarizer) isAnthropicModel() bool {
	return strings.HasPrefix(s.modelID, "anthropic.claude")
}

func (s *Summarizer) isAmazonTitanModel() bool {
	return strings.HasPrefix(s.modelID, "amazon.titan")
}
