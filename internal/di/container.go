package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/adapters/gmail"
	"github.com/jfmartin/mail-harvester/internal/adapters/watermark"
	"github.com/jfmartin/mail-harvester/internal/config"
	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/factory"
	"github.com/jfmartin/mail-harvester/internal/ignore"
	"github.com/jfmartin/mail-harvester/internal/logging"
	"github.com/jfmartin/mail-harvester/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewSummarizerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewExtractorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register summarizer
	if err := container.Provide(func(f *factory.SummarizerFactory) (core.Summarizer, error) {
		return f.CreateSummarizer()
	}); err != nil {
		return nil, err
	}

	// Register record store
	if err := container.Provide(func(f *factory.StoreFactory) (core.RecordStore, error) {
		return f.CreateRecordStore()
	}); err != nil {
		return nil, err
	}

	// Register content extractor
	if err := container.Provide(func(f *factory.ExtractorFactory) core.Extractor {
		return f.CreateExtractor()
	}); err != nil {
		return nil, err
	}

	// Register watermark store
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.WatermarkStore, error) {
		syncCfg, err := cfg.GetSync()
		if err != nil {
			return nil, err
		}
		return watermarkStore(syncCfg, logger)
	}); err != nil {
		return nil, err
	}

	// Register mailbox
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger, tp *utils.TextProcessor) (core.Mailbox, error) {
		return gmail.NewClient(context.Background(), cfg.GetGmail(), logger, tp)
	}); err != nil {
		return nil, err
	}

	// Register ignore rules
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.IgnoreChecker, error) {
		syncCfg, err := cfg.GetSync()
		if err != nil {
			return nil, err
		}
		return ignore.NewChecker(syncCfg.IgnoreSenders, syncCfg.IgnoreSubjectKeywords, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register sync engine
	if err := container.Provide(func(
		cfg *config.Config,
		logger *zap.Logger,
		mailbox core.Mailbox,
		extractor core.Extractor,
		summarizer core.Summarizer,
		ignoreChecker core.IgnoreChecker,
	) (*core.SyncEngine, error) {
		syncCfg, err := cfg.GetSync()
		if err != nil {
			return nil, err
		}
		return core.NewSyncEngine(mailbox, extractor, summarizer, ignoreChecker, logger, syncCfg.PageLimit, syncCfg.TempDir), nil
	}); err != nil {
		return nil, err
	}

	// Register harvester
	if err := container.Provide(func(
		cfg *config.Config,
		logger *zap.Logger,
		engine *core.SyncEngine,
		store core.RecordStore,
		watermarks core.WatermarkStore,
	) (*core.Harvester, error) {
		syncCfg, err := cfg.GetSync()
		if err != nil {
			return nil, err
		}
		return core.NewHarvester(engine, store, watermarks, logger, syncCfg.IdleDelay), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}

func watermarkStore(syncCfg config.SyncConfig, logger *zap.Logger) (core.WatermarkStore, error) {
	return watermark.NewFileStore(syncCfg.WatermarkPath, logger)
}
