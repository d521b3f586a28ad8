package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the flat run configuration. Defaults come from DefaultConfig and
// may be overridden by environment variables (including a .env file) or, in
// the server variant, by the JSON file owned by Manager.
type Config struct {
	ProjectDir   string `json:"project_dir"`
	ResultsDir   string `json:"results_dir"`
	DataCacheDir string `json:"data_cache_dir"`

	LogLevel string `json:"log_level"`
	Debug    bool   `json:"debug"`
	CacheTTL int    `json:"cache_ttl"`

	LLMProvider   string `json:"llm_provider"`
	DeepThinkLLM  string `json:"deep_think_llm"`
	QuickThinkLLM string `json:"quick_think_llm"`
	BackendURL    string `json:"backend_url"`

	MaxDebateRounds      int `json:"max_debate_rounds"`
	MaxRiskDiscussRounds int `json:"max_risk_discuss_rounds"`
	MaxRecurLimit        int `json:"max_recur_limit"`

	// Provider API keys
	OpenAIAPIKey     string `json:"openai_api_key"`
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	GoogleAPIKey     string `json:"google_api_key"`
	OpenRouterAPIKey string `json:"openrouter_api_key"`
	DeepSeekAPIKey   string `json:"deepseek_api_key"`
}

// DefaultConfig builds the baseline configuration and applies environment
// overrides. A .env file in the working directory is honored when present.
func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()
	cfg := DefaultConfigWithRoot(currentDir)

	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

// DefaultConfigWithRoot builds the baseline configuration rooted at dir
// without consulting the environment.
func DefaultConfigWithRoot(dir string) *Config {
	return &Config{
		ProjectDir:   dir,
		ResultsDir:   filepath.Join(dir, "results"),
		DataCacheDir: filepath.Join(dir, "data", "cache"),

		LogLevel: "INFO",
		Debug:    false,
		CacheTTL: 3600,

		LLMProvider:   "openai",
		DeepThinkLLM:  "o4-mini",
		QuickThinkLLM: "gpt-4o-mini",
		BackendURL:    "",

		MaxDebateRounds:      1,
		MaxRiskDiscussRounds: 1,
		MaxRecurLimit:        100,
	}
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("TRADEPULSE_RESULTS_DIR"); val != "" {
		c.ResultsDir = val
	}
	if val := os.Getenv("TRADEPULSE_DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}
	if val := os.Getenv("TRADEPULSE_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("TRADEPULSE_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
	if val := os.Getenv("TRADEPULSE_CACHE_TTL"); val != "" {
		if ttl, err := strconv.Atoi(val); err == nil {
			c.CacheTTL = ttl
		}
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("DEEP_THINK_LLM"); val != "" {
		c.DeepThinkLLM = val
	}
	if val := os.Getenv("QUICK_THINK_LLM"); val != "" {
		c.QuickThinkLLM = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}

	if val := os.Getenv("MAX_DEBATE_ROUNDS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxDebateRounds = v
		}
	}
	if val := os.Getenv("MAX_RISK_DISCUSS_ROUNDS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxRiskDiscussRounds = v
		}
	}
	if val := os.Getenv("MAX_RECUR_LIMIT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxRecurLimit = v
		}
	}

	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("ANTHROPIC_API_KEY"); val != "" {
		c.AnthropicAPIKey = val
	}
	if val := os.Getenv("GOOGLE_API_KEY"); val != "" {
		c.GoogleAPIKey = val
	}
	if val := os.Getenv("OPENROUTER_API_KEY"); val != "" {
		c.OpenRouterAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
}

// Validate checks the invariants the orchestration layer relies on.
func (c *Config) Validate() error {
	if c.MaxDebateRounds < 1 {
		return fmt.Errorf("max_debate_rounds must be positive, got %d", c.MaxDebateRounds)
	}
	if c.MaxRiskDiscussRounds < 1 {
		return fmt.Errorf("max_risk_discuss_rounds must be positive, got %d", c.MaxRiskDiscussRounds)
	}
	if c.MaxRecurLimit < 1 {
		return fmt.Errorf("max_recur_limit must be positive, got %d", c.MaxRecurLimit)
	}
	if strings.TrimSpace(c.LLMProvider) == "" {
		return fmt.Errorf("llm_provider must not be empty")
	}
	return nil
}

// EnsureDirectories creates the result and cache directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ResultsDir, c.DataCacheDir}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}
