package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/config"
	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/factory"
	"github.com/jfmartin/mail-harvester/internal/logging"
)

var (
	// Summarizer flags
	provider    = flag.String("provider", "openai", "Summarizer provider (openai, bedrock, gemini)")
	maxTokens   = flag.Int("max-tokens", 100, "Maximum tokens for the summary")
	temperature = flag.Float64("temperature", 0.1, "Temperature for generation")
	maxInput    = flag.Int("max-input-size", 4096, "Maximum input size sent to the summarizer")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-3.5-turbo", "OpenAI model name")

	// OCR flags
	ocrBinary   = flag.String("ocr-binary", "tesseract", "Path to the tesseract binary")
	ocrLanguage = flag.String("ocr-language", "eng", "OCR language")
	pdfDPI      = flag.Float64("pdf-dpi", 300, "Rasterization DPI for the PDF OCR fallback")

	// Input flags
	inputFile  = flag.String("file", "", "Input attachment file")
	summarize  = flag.Bool("summarize", false, "Also summarize the extracted text")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *inputFile == "" {
		logger.Fatal("No input file specified, use -file")
	}

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.NewFromFile(*configFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	extractor := factory.NewExtractorFactory(cfg, logger).CreateExtractor()

	kind := core.ClassifyFilename(filepath.Base(*inputFile))

	fmt.Printf("\n=== Attachment ===\n")
	fmt.Printf("File: %s\n", *inputFile)
	fmt.Printf("Category: %s\n", kind)

	startTime := time.Now()
	text, err := extractor.ExtractFile(context.Background(), *inputFile, kind)
	if err != nil {
		logger.Fatal("Failed to extract text", zap.Error(err))
	}

	fmt.Printf("\n=== Extracted Text ===\n")
	fmt.Printf("%s\n", text)
	fmt.Printf("\nExtraction time: %v\n", time.Since(startTime))

	if !*summarize {
		return
	}

	textProcessor := factory.NewTextProcessorFactory(logger).CreateTextProcessor()
	summarizer, err := factory.NewSummarizerFactory(cfg, logger, textProcessor).CreateSummarizer()
	if err != nil {
		logger.Fatal("Failed to create summarizer", zap.Error(err))
	}

	summary, err := summarizer.Summarize(context.Background(), text)
	if err != nil {
		logger.Fatal("Failed to summarize text", zap.Error(err))
	}

	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("%s\n", summary)

	if closer, ok := summarizer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close summarizer", zap.Error(err))
		}
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set summarizer provider
	v.Set("summarizer.provider", *provider)

	// Set provider-specific configuration
	switch *provider {
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.temperature", *temperature)
		v.Set("openai.max_input_size", *maxInput)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.temperature", *temperature)
		v.Set("bedrock.max_input_size", *maxInput)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.temperature", *temperature)
		v.Set("gemini.max_input_size", *maxInput)
	}

	// Set OCR configuration
	v.Set("ocr.binary", *ocrBinary)
	v.Set("ocr.language", *ocrLanguage)
	v.Set("ocr.pdf_dpi", *pdfDPI)

	return config.NewFromViper(v)
}
