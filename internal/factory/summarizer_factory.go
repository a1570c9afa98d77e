package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/adapters/bedrock"
	"github.com/jfmartin/mail-harvester/internal/adapters/gemini"
	"github.com/jfmartin/mail-harvester/internal/adapters/openai"
	"github.com/jfmartin/mail-harvester/internal/config"
	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/utils"
)

// SummarizerFactory creates summarizers
type SummarizerFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewSummarizerFactory creates a new summarizer factory
func NewSummarizerFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *SummarizerFactory {
	return &SummarizerFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateSummarizer creates a new summarizer based on the configuration
func (f *SummarizerFactory) CreateSummarizer() (core.Summarizer, error) {
	provider := f.cfg.GetSummarizer().Provider

	switch provider {
	case "openai":
		return openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateSummarizer()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateSummarizer()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateSummarizer()
	default:
		return nil, fmt.Errorf("unsupported summarizer provider: %s", provider)
	}
}
