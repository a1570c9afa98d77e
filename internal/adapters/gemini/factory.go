package gemini

import (
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/config"
	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/utils"
)

// Factory creates Gemini summarizers from configuration.
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for Gemini summarizers.
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateSummarizer creates a new Gemini summarizer.
func (f *Factory) CreateSummarizer() (core.Summarizer, error) {
	geminiCfg := f.cfg.GetGemini()

	return NewSummarizer(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		geminiCfg.MaxInputSize,
		f.logger,
		f.textProcessor,
	)
}
