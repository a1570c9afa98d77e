package config

import "time"

// SummarizerConfig represents the configuration for the summarization provider
type SummarizerConfig struct {
	Provider string
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey       string
	ModelName    string
	MaxTokens    int
	Temperature  float32
	MaxInputSize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region       string
	ModelID      string
	MaxTokens    int
	Temperature  float32
	MaxInputSize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey       string
	ModelName    string
	MaxTokens    int
	Temperature  float32
	MaxInputSize int
}

// GmailConfig represents the configuration for the Gmail mailbox
type GmailConfig struct {
	CredentialsFile string
	TokenFile       string
	Label           string
}

// OCRConfig represents the configuration for the OCR capability
type OCRConfig struct {
	Binary   string
	Language string
	PDFDPI   float64
}

// StorageConfig represents the configuration for the record store
type StorageConfig struct {
	Type       string
	CSVPath    string
	SQLitePath string
	MySQLDSN   string
}

// SyncConfig represents the configuration for the harvesting loop
type SyncConfig struct {
	PageLimit             int64
	IdleDelay             time.Duration
	WatermarkPath         string
	TempDir               string
	IgnoreSenders         []string
	IgnoreSubjectKeywords []string
}

// GetSummarizer returns the summarizer configuration
func (c *Config) GetSummarizer() SummarizerConfig {
	return SummarizerConfig{
		Provider: c.GetString("summarizer.provider"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:       c.GetString("openai.api_key"),
		ModelName:    c.GetString("openai.model_name"),
		MaxTokens:    c.GetInt("openai.max_tokens"),
		Temperature:  float32(c.GetFloat64("openai.temperature")),
		MaxInputSize: c.GetInt("openai.max_input_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:       c.GetString("bedrock.region"),
		ModelID:      c.GetString("bedrock.model_id"),
		MaxTokens:    c.GetInt("bedrock.max_tokens"),
		Temperature:  float32(c.GetFloat64("bedrock.temperature")),
		MaxInputSize: c.GetInt("bedrock.max_input_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:       c.GetString("gemini.api_key"),
		ModelName:    c.GetString("gemini.model_name"),
		MaxTokens:    c.GetInt("gemini.max_tokens"),
		Temperature:  float32(c.GetFloat64("gemini.temperature")),
		MaxInputSize: c.GetInt("gemini.max_input_size"),
	}
}

// GetGmail returns the Gmail configuration
func (c *Config) GetGmail() GmailConfig {
	return GmailConfig{
		CredentialsFile: c.GetString("gmail.credentials_file"),
		TokenFile:       c.GetString("gmail.token_file"),
		Label:           c.GetString("gmail.label"),
	}
}

// GetOCR returns the OCR configuration
func (c *Config) GetOCR() OCRConfig {
	return OCRConfig{
		Binary:   c.GetString("ocr.binary"),
		Language: c.GetString("ocr.language"),
		PDFDPI:   c.GetFloat64("ocr.pdf_dpi"),
	}
}

// GetStorage returns the storage configuration
func (c *Config) GetStorage() StorageConfig {
	return StorageConfig{
		Type:       c.GetString("storage.type"),
		CSVPath:    c.GetString("storage.csv_path"),
		SQLitePath: c.GetString("storage.sqlite_path"),
		MySQLDSN:   c.GetString("storage.mysql_dsn"),
	}
}

// GetSync returns the sync configuration
func (c *Config) GetSync() (SyncConfig, error) {
	idleDelay, err := c.GetDuration("sync.idle_delay")
	if err != nil {
		return SyncConfig{}, err
	}
	return SyncConfig{
		PageLimit:             c.GetInt64("sync.page_limit"),
		IdleDelay:             idleDelay,
		WatermarkPath:         c.GetString("sync.watermark_path"),
		TempDir:               c.GetString("sync.temp_dir"),
		IgnoreSenders:         c.GetStringSlice("sync.ignore_senders"),
		IgnoreSubjectKeywords: c.GetStringSlice("sync.ignore_subject_keywords"),
	}, nil
}
