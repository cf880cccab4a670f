// Package config provides configuration management for the
// ghana-translator application.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"ghana-translator/internal/logger"
	"ghana-translator/internal/types"
)

const (
	// DefaultConfigFileName is the default configuration file name
	DefaultConfigFileName = "config.json"
	// EnvEngine selects the translation engine (google or llm)
	EnvEngine = "GT_ENGINE"
	// EnvLLMAPIKey is the primary environment variable for the LLM API key
	EnvLLMAPIKey = "GT_LLM_API_KEY"
	// EnvOpenAIAPIKey is the fallback environment variable for the LLM API key
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	// EnvLLMBaseURL is the environment variable for the LLM base URL
	EnvLLMBaseURL = "GT_LLM_BASE_URL"
	// EnvLLMModel is the environment variable for the LLM model name
	EnvLLMModel = "GT_LLM_MODEL"

	// DefaultEngine is the default translation engine
	DefaultEngine = "google"
	// DefaultGoogleAPIURL is the endpoint of the free Google translate web API
	DefaultGoogleAPIURL = "https://translate.googleapis.com/translate_a/single"
	// DefaultLLMBaseURL is the default OpenAI-compatible API base URL
	DefaultLLMBaseURL = "https://api.openai.com/v1"
	// DefaultLLMModel is the default model for the LLM engine
	DefaultLLMModel = "gpt-4o-mini"
	// DefaultTimeoutSeconds is the default per-request timeout
	DefaultTimeoutSeconds = 30
	// DefaultConcurrency is the default batch translation concurrency
	DefaultConcurrency = 3
	// DefaultRequestsPerSecond is the default rate limit for the Google engine
	DefaultRequestsPerSecond = 5.0
)

// LLMConfig holds settings for the LLM translation engine.
type LLMConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level         string `json:"level"`
	File          string `json:"file"`
	EnableConsole bool   `json:"enable_console"`
	MaxFileSize   int64  `json:"max_file_size"`
	MaxBackups    int    `json:"max_backups"`
}

// Config is the application configuration.
type Config struct {
	Engine            string    `json:"engine"`
	GoogleAPIURL      string    `json:"google_api_url"`
	RequestsPerSecond float64   `json:"requests_per_second"`
	TimeoutSeconds    int       `json:"timeout_seconds"`
	Concurrency       int       `json:"concurrency"`
	LLM               LLMConfig `json:"llm"`
	Log               LogConfig `json:"log"`
}

// ConfigManager manages application configuration
type ConfigManager struct {
	configPath string
	config     *Config
}

// NewConfigManager creates a new ConfigManager with the specified config path.
// If configPath is empty, it uses the default path in the user's home directory.
func NewConfigManager(configPath string) (*ConfigManager, error) {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, types.NewAppError(types.ErrConfig, "failed to get user home directory", err)
		}
		configPath = filepath.Join(homeDir, ".config", "ghana-translator", DefaultConfigFileName)
	}

	return &ConfigManager{
		configPath: configPath,
		config:     defaultConfig(),
	}, nil
}

// defaultConfig returns a Config with default values
func defaultConfig() *Config {
	return &Config{
		Engine:            DefaultEngine,
		GoogleAPIURL:      DefaultGoogleAPIURL,
		RequestsPerSecond: DefaultRequestsPerSecond,
		TimeoutSeconds:    DefaultTimeoutSeconds,
		Concurrency:       DefaultConcurrency,
		LLM: LLMConfig{
			BaseURL: DefaultLLMBaseURL,
			Model:   DefaultLLMModel,
		},
		Log: LogConfig{
			Level:         "info",
			EnableConsole: true,
			MaxFileSize:   10 * 1024 * 1024,
			MaxBackups:    5,
		},
	}
}

// Load loads configuration from the config file.
// A missing or unparsable file falls back to defaults rather than
// failing; an unreadable file is an error.
func (m *ConfigManager) Load() error {
	logger.Debug("loading configuration", logger.String("path", m.configPath))

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("config file not found, using defaults", logger.String("path", m.configPath))
			m.config = defaultConfig()
		} else {
			return types.NewAppError(types.ErrConfig, "failed to read config file", err)
		}
	} else {
		config := &Config{}
		if err := json.Unmarshal(data, config); err != nil {
			logger.Warn("invalid config file format, using defaults",
				logger.String("path", m.configPath), logger.Err(err))
			m.config = defaultConfig()
		} else {
			m.config = config
		}
	}

	m.applyDefaults()
	return nil
}

// applyDefaults fills empty fields with default values
func (m *ConfigManager) applyDefaults() {
	if m.config.Engine == "" {
		m.config.Engine = DefaultEngine
	}
	if m.config.GoogleAPIURL == "" {
		m.config.GoogleAPIURL = DefaultGoogleAPIURL
	}
	if m.config.RequestsPerSecond <= 0 {
		m.config.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if m.config.TimeoutSeconds <= 0 {
		m.config.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if m.config.Concurrency <= 0 {
		m.config.Concurrency = DefaultConcurrency
	}
	if m.config.LLM.BaseURL == "" {
		m.config.LLM.BaseURL = DefaultLLMBaseURL
	}
	if m.config.LLM.Model == "" {
		m.config.LLM.Model = DefaultLLMModel
	}
	if m.config.Log.Level == "" {
		m.config.Log.Level = "info"
	}
	if m.config.Log.MaxFileSize <= 0 {
		m.config.Log.MaxFileSize = 10 * 1024 * 1024
	}
	if m.config.Log.MaxBackups <= 0 {
		m.config.Log.MaxBackups = 5
	}
}

// Save saves the current configuration to the config file.
func (m *ConfigManager) Save() error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return types.NewAppError(types.ErrConfig, "failed to create config directory", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return types.NewAppError(types.ErrConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return types.NewAppError(types.ErrConfig, "failed to write config file", err)
	}

	logger.Debug("configuration saved", logger.String("path", m.configPath))
	return nil
}

// GetConfig returns the current configuration.
func (m *ConfigManager) GetConfig() *Config {
	if m.config == nil {
		return defaultConfig()
	}
	return m.config
}

// GetConfigPath returns the path to the config file.
func (m *ConfigManager) GetConfigPath() string {
	return m.configPath
}

// SetConfig replaces the current configuration.
func (m *ConfigManager) SetConfig(config *Config) {
	m.config = config
}

// SetLLMAPIKey sets the LLM API key and saves the configuration.
func (m *ConfigManager) SetLLMAPIKey(apiKey string) error {
	if m.config == nil {
		m.config = defaultConfig()
	}
	m.config.LLM.APIKey = apiKey
	return m.Save()
}

// GetEngine returns the configured engine name, with the environment
// variable taking precedence over the config file.
func (m *ConfigManager) GetEngine() string {
	if env := os.Getenv(EnvEngine); env != "" {
		return env
	}
	if m.config != nil && m.config.Engine != "" {
		return m.config.Engine
	}
	return DefaultEngine
}

// GetLLMAPIKey returns the LLM API key.
// It first checks the config file value, then falls back to the
// GT_LLM_API_KEY and OPENAI_API_KEY environment variables.
func (m *ConfigManager) GetLLMAPIKey() string {
	if m.config != nil && m.config.LLM.APIKey != "" {
		return m.config.LLM.APIKey
	}
	if key := os.Getenv(EnvLLMAPIKey); key != "" {
		return key
	}
	return os.Getenv(EnvOpenAIAPIKey)
}

// GetLLMBaseURL returns the LLM API base URL, env fallback included.
func (m *ConfigManager) GetLLMBaseURL() string {
	if m.config != nil && m.config.LLM.BaseURL != "" {
		return m.config.LLM.BaseURL
	}
	if env := os.Getenv(EnvLLMBaseURL); env != "" {
		return env
	}
	return DefaultLLMBaseURL
}

// GetLLMModel returns the LLM model name, env fallback included.
func (m *ConfigManager) GetLLMModel() string {
	if m.config != nil && m.config.LLM.Model != "" {
		return m.config.LLM.Model
	}
	if env := os.Getenv(EnvLLMModel); env != "" {
		return env
	}
	return DefaultLLMModel
}

// GetTimeoutSeconds returns the per-request timeout.
func (m *ConfigManager) GetTimeoutSeconds() int {
	if m.config != nil && m.config.TimeoutSeconds > 0 {
		return m.config.TimeoutSeconds
	}
	return DefaultTimeoutSeconds
}

// GetConcurrency returns the batch translation concurrency.
func (m *ConfigManager) GetConcurrency() int {
	if m.config != nil && m.config.Concurrency > 0 {
		return m.config.Concurrency
	}
	return DefaultConcurrency
}
