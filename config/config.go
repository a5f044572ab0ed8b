// Package config loads the JSON config file and applies environment
// overrides for provider credentials.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all deployment settings.
type Config struct {
	// Catalog selects the prompt catalog shape: "tone" (default) or "audience".
	Catalog string `json:"catalog,omitempty"`
	// RequireMode makes a missing style/contentType a 400 instead of a
	// catalog fallback.
	RequireMode bool       `json:"require_mode,omitempty"`
	LLM         *LLMConfig `json:"llm,omitempty"`
	ServerAddr  string     `json:"server_addr,omitempty"`
	DBPath      string     `json:"db_path,omitempty"`
}

// LLMConfig 模型配置。APIKey 为空时从环境变量补齐。
type LLMConfig struct {
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	APIKeyEnv string `json:"api_key_env,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
}

// Load reads JSON config from disk and fills credentials from the
// environment (.env is honored when present).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return Config{}, fmt.Errorf("config must include llm.provider")
	}

	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	if cfg.DBPath == "" {
		cfg.DBPath = "data/snippets.db"
	}
	return cfg, nil
}

// applyEnvOverrides fills llm.api_key from the environment when the file
// leaves it blank: an explicit api_key_env wins, then the provider's
// conventional variable.
func (c *Config) applyEnvOverrides() {
	if c.LLM == nil || c.LLM.APIKey != "" {
		return
	}
	if c.LLM.APIKeyEnv != "" {
		c.LLM.APIKey = os.Getenv(c.LLM.APIKeyEnv)
		return
	}
	switch c.LLM.Provider {
	case "openai", "deepseek":
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		c.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}
