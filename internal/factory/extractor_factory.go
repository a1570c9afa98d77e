package factory

import (
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/adapters/ocr"
	"github.com/jfmartin/mail-harvester/internal/config"
	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/extract"
)

// ExtractorFactory creates content extractors
type ExtractorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory(cfg *config.Config, logger *zap.Logger) *ExtractorFactory {
	return &ExtractorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateExtractor creates a content extractor wired to the configured OCR binary
func (f *ExtractorFactory) CreateExtractor() core.Extractor {
	ocrCfg := f.cfg.GetOCR()
	engine := ocr.NewTesseract(ocrCfg.Binary, ocrCfg.Language, f.logger)
	return extract.NewExtractor(engine, f.logger, ocrCfg.PDFDPI)
}
