package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigManager(t *testing.T) {
	t.Run("with custom path", func(t *testing.T) {
		customPath := "/tmp/test-config.json"
		cm, err := NewConfigManager(customPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		if cm.GetConfigPath() != customPath {
			t.Errorf("expected config path %s, got %s", customPath, cm.GetConfigPath())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		cm, err := NewConfigManager("")
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		if cm.GetConfigPath() == "" {
			t.Error("expected non-empty config path")
		}
	})
}

func TestConfigManager_LoadSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.json")

	t.Run("Load with non-existent file uses defaults", func(t *testing.T) {
		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}

		if err := cm.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		config := cm.GetConfig()
		if config.Engine != DefaultEngine {
			t.Errorf("expected default engine %s, got %s", DefaultEngine, config.Engine)
		}
		if config.GoogleAPIURL != DefaultGoogleAPIURL {
			t.Errorf("expected default API URL %s, got %s", DefaultGoogleAPIURL, config.GoogleAPIURL)
		}
		if config.TimeoutSeconds != DefaultTimeoutSeconds {
			t.Errorf("expected default timeout %d, got %d", DefaultTimeoutSeconds, config.TimeoutSeconds)
		}
		if config.Concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, config.Concurrency)
		}
	})

	t.Run("Save creates config file", func(t *testing.T) {
		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}

		cm.SetConfig(&Config{
			Engine:         "llm",
			TimeoutSeconds: 60,
			LLM: LLMConfig{
				APIKey: "test-api-key",
				Model:  "gpt-4o",
			},
		})

		if err := cm.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			t.Error("config file was not created")
		}
	})

	t.Run("Load reads saved config", func(t *testing.T) {
		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}

		if err := cm.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		config := cm.GetConfig()
		if config.Engine != "llm" {
			t.Errorf("expected engine 'llm', got '%s'", config.Engine)
		}
		if config.TimeoutSeconds != 60 {
			t.Errorf("expected timeout 60, got %d", config.TimeoutSeconds)
		}
		if config.LLM.APIKey != "test-api-key" {
			t.Errorf("expected API key 'test-api-key', got '%s'", config.LLM.APIKey)
		}
		if config.LLM.Model != "gpt-4o" {
			t.Errorf("expected model 'gpt-4o', got '%s'", config.LLM.Model)
		}
	})

	t.Run("Load fills missing fields with defaults", func(t *testing.T) {
		partialPath := filepath.Join(tmpDir, "partial-config.json")
		if err := os.WriteFile(partialPath, []byte(`{"engine":"google"}`), 0644); err != nil {
			t.Fatalf("failed to write partial config: %v", err)
		}

		cm, err := NewConfigManager(partialPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		if err := cm.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		config := cm.GetConfig()
		if config.GoogleAPIURL != DefaultGoogleAPIURL {
			t.Errorf("expected default API URL, got %s", config.GoogleAPIURL)
		}
		if config.LLM.Model != DefaultLLMModel {
			t.Errorf("expected default LLM model, got %s", config.LLM.Model)
		}
		if config.Log.Level != "info" {
			t.Errorf("expected default log level 'info', got %s", config.Log.Level)
		}
	})

	t.Run("Load with invalid JSON uses defaults", func(t *testing.T) {
		invalidConfigPath := filepath.Join(tmpDir, "invalid-config.json")
		if err := os.WriteFile(invalidConfigPath, []byte("invalid json"), 0644); err != nil {
			t.Fatalf("failed to write invalid config: %v", err)
		}

		cm, err := NewConfigManager(invalidConfigPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}

		if err := cm.Load(); err != nil {
			t.Fatalf("Load should not fail with invalid JSON: %v", err)
		}

		config := cm.GetConfig()
		if config.Engine != DefaultEngine {
			t.Errorf("expected default engine after invalid JSON, got %s", config.Engine)
		}
	})
}

func TestConfigManager_GetEngine(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test-config.json")

	t.Run("returns config file value when set", func(t *testing.T) {
		t.Setenv(EnvEngine, "")

		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		cm.SetConfig(&Config{Engine: "llm"})

		if got := cm.GetEngine(); got != "llm" {
			t.Errorf("expected 'llm', got '%s'", got)
		}
	})

	t.Run("environment variable takes precedence", func(t *testing.T) {
		t.Setenv(EnvEngine, "google")

		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		cm.SetConfig(&Config{Engine: "llm"})

		if got := cm.GetEngine(); got != "google" {
			t.Errorf("expected 'google' (from env), got '%s'", got)
		}
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Setenv(EnvEngine, "")

		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		cm.SetConfig(&Config{})

		if got := cm.GetEngine(); got != DefaultEngine {
			t.Errorf("expected default engine, got '%s'", got)
		}
	})
}

func TestConfigManager_GetLLMAPIKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test-config.json")

	t.Run("returns config file value when set", func(t *testing.T) {
		t.Setenv(EnvLLMAPIKey, "")
		t.Setenv(EnvOpenAIAPIKey, "")

		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		cm.SetConfig(&Config{LLM: LLMConfig{APIKey: "config-api-key"}})

		if got := cm.GetLLMAPIKey(); got != "config-api-key" {
			t.Errorf("expected 'config-api-key', got '%s'", got)
		}
	})

	t.Run("falls back to GT_LLM_API_KEY", func(t *testing.T) {
		t.Setenv(EnvLLMAPIKey, "gt-env-key")
		t.Setenv(EnvOpenAIAPIKey, "openai-env-key")

		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		cm.SetConfig(&Config{})

		if got := cm.GetLLMAPIKey(); got != "gt-env-key" {
			t.Errorf("expected 'gt-env-key', got '%s'", got)
		}
	})

	t.Run("falls back to OPENAI_API_KEY last", func(t *testing.T) {
		t.Setenv(EnvLLMAPIKey, "")
		t.Setenv(EnvOpenAIAPIKey, "openai-env-key")

		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		cm.SetConfig(&Config{})

		if got := cm.GetLLMAPIKey(); got != "openai-env-key" {
			t.Errorf("expected 'openai-env-key', got '%s'", got)
		}
	})

	t.Run("config file takes precedence over env", func(t *testing.T) {
		t.Setenv(EnvLLMAPIKey, "gt-env-key")

		cm, err := NewConfigManager(configPath)
		if err != nil {
			t.Fatalf("NewConfigManager failed: %v", err)
		}
		cm.SetConfig(&Config{LLM: LLMConfig{APIKey: "config-api-key"}})

		if got := cm.GetLLMAPIKey(); got != "config-api-key" {
			t.Errorf("expected 'config-api-key' (from config), got '%s'", got)
		}
	})
}

func TestConfigManager_SetLLMAPIKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test-config.json")

	cm, err := NewConfigManager(configPath)
	if err != nil {
		t.Fatalf("NewConfigManager failed: %v", err)
	}

	if err := cm.SetLLMAPIKey("new-api-key"); err != nil {
		t.Fatalf("SetLLMAPIKey failed: %v", err)
	}

	if cm.GetLLMAPIKey() != "new-api-key" {
		t.Errorf("expected 'new-api-key', got '%s'", cm.GetLLMAPIKey())
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}

	var savedConfig Config
	if err := json.Unmarshal(data, &savedConfig); err != nil {
		t.Fatalf("failed to parse saved config: %v", err)
	}
	if savedConfig.LLM.APIKey != "new-api-key" {
		t.Errorf("expected saved API key 'new-api-key', got '%s'", savedConfig.LLM.APIKey)
	}
}

func TestConfigManager_GettersWithDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test-config.json")

	cm, err := NewConfigManager(configPath)
	if err != nil {
		t.Fatalf("NewConfigManager failed: %v", err)
	}

	t.Run("GetLLMModel returns default when empty", func(t *testing.T) {
		t.Setenv(EnvLLMModel, "")
		cm.SetConfig(&Config{})
		if cm.GetLLMModel() != DefaultLLMModel {
			t.Errorf("expected default model %s, got %s", DefaultLLMModel, cm.GetLLMModel())
		}
	})

	t.Run("GetLLMModel returns configured value", func(t *testing.T) {
		cm.SetConfig(&Config{LLM: LLMConfig{Model: "gpt-4o"}})
		if cm.GetLLMModel() != "gpt-4o" {
			t.Errorf("expected 'gpt-4o', got %s", cm.GetLLMModel())
		}
	})

	t.Run("GetLLMBaseURL returns default when empty", func(t *testing.T) {
		t.Setenv(EnvLLMBaseURL, "")
		cm.SetConfig(&Config{})
		if cm.GetLLMBaseURL() != DefaultLLMBaseURL {
			t.Errorf("expected default base URL %s, got %s", DefaultLLMBaseURL, cm.GetLLMBaseURL())
		}
	})

	t.Run("GetTimeoutSeconds returns default when zero", func(t *testing.T) {
		cm.SetConfig(&Config{})
		if cm.GetTimeoutSeconds() != DefaultTimeoutSeconds {
			t.Errorf("expected default timeout %d, got %d", DefaultTimeoutSeconds, cm.GetTimeoutSeconds())
		}
	})

	t.Run("GetConcurrency returns configured value", func(t *testing.T) {
		cm.SetConfig(&Config{Concurrency: 8})
		if cm.GetConcurrency() != 8 {
			t.Errorf("expected 8, got %d", cm.GetConcurrency())
		}
	})
}

func TestConfigManager_SaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "nested", "dir", "config.json")

	cm, err := NewConfigManager(configPath)
	if err != nil {
		t.Fatalf("NewConfigManager failed: %v", err)
	}

	if err := cm.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created in nested directory")
	}
}
