package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/gorhill/cronexpr"
	"gopkg.in/yaml.v3"
)

// Config holds the labdex configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Search    SearchConfig    `yaml:"search"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Answer    AnswerConfig    `yaml:"answer"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds storage backend settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, sqlite (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Path             string   `yaml:"path"` // sqlite file path
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds universal search settings.
type SearchConfig struct {
	DefaultPageSize      int     `yaml:"default_page_size"`
	MaxPageSize          int     `yaml:"max_page_size"`
	VisibleScore         float64 `yaml:"visible_score"`
	SuggestionLimit      int     `yaml:"suggestion_limit"`
	SuggestionsPerSource int     `yaml:"suggestions_per_source"`
}

// RetrievalConfig holds excerpt selection settings for question answering.
type RetrievalConfig struct {
	MinRelevance float64 `yaml:"min_relevance"`
	TopK         int     `yaml:"top_k"`
}

// AnswerConfig holds the external language model settings.
type AnswerConfig struct {
	Provider     string       `yaml:"provider"` // openai, gemini, none
	APIKey       string       `yaml:"api_key"`
	BaseURL      string       `yaml:"base_url"`
	Model        string       `yaml:"model"`
	MaxTokens    int          `yaml:"max_tokens"`
	Temperature  float32      `yaml:"temperature"`
	TimeoutMs    int          `yaml:"timeout_ms"`
	SystemPrompt string       `yaml:"system_prompt"`
	Budget       BudgetConfig `yaml:"budget"`
}

// BudgetConfig caps language model token spend. Zero limits mean unlimited.
type BudgetConfig struct {
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"`
	Action            string `yaml:"action"` // warn, reject (default: warn)
}

// AnalyticsConfig holds project analytics settings.
type AnalyticsConfig struct {
	DefaultWindowDays int    `yaml:"default_window_days"`
	Workers           int    `yaml:"workers"`
	Schedule          string `yaml:"schedule"` // cron expression, empty disables the scheduler
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Answer providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// DefaultSystemPrompt is the system message sent with every question.
const DefaultSystemPrompt = "You are a helpful AI assistant for research document analysis."

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.Path == "" {
		c.Database.Path = "labdex.db"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	c.applySearchDefaults()
	if c.Retrieval.MinRelevance <= 0 {
		c.Retrieval.MinRelevance = 0.1
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 5
	}
	c.applyAnswerDefaults()
	if c.Analytics.DefaultWindowDays <= 0 {
		c.Analytics.DefaultWindowDays = 30
	}
	if c.Analytics.Workers <= 0 {
		c.Analytics.Workers = 4
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "labdex:"
	}
}

func (c *Config) applySearchDefaults() {
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 20
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.VisibleScore <= 0 {
		c.Search.VisibleScore = 0.8
	}
	if c.Search.SuggestionLimit <= 0 {
		c.Search.SuggestionLimit = 5
	}
	if c.Search.SuggestionsPerSource <= 0 {
		c.Search.SuggestionsPerSource = 3
	}
}

func (c *Config) applyAnswerDefaults() {
	if c.Answer.Provider == "" {
		c.Answer.Provider = ProviderNone
	}
	if c.Answer.MaxTokens <= 0 {
		c.Answer.MaxTokens = 1000
	}
	if c.Answer.Temperature <= 0 {
		c.Answer.Temperature = 0.7
	}
	if c.Answer.TimeoutMs <= 0 {
		c.Answer.TimeoutMs = 15000
	}
	if c.Answer.Budget.Action == "" {
		c.Answer.Budget.Action = "warn"
	}
	if c.Answer.SystemPrompt == "" {
		c.Answer.SystemPrompt = DefaultSystemPrompt
	}
	if c.Answer.Model == "" {
		switch c.Answer.Provider {
		case ProviderOpenAI:
			c.Answer.Model = "mixtral-8x7b-32768"
		case ProviderGemini:
			c.Answer.Model = "gemini-2.0-flash"
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for the redis driver")
		}
	case "sqlite":
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"sqlite\", got %q", c.Database.Driver)
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("search.default_page_size (%d) exceeds search.max_page_size (%d)",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	if c.Search.VisibleScore > 1 {
		return fmt.Errorf("search.visible_score must be in (0, 1], got %v", c.Search.VisibleScore)
	}
	if c.Retrieval.MinRelevance >= 1 {
		return fmt.Errorf("retrieval.min_relevance must be below 1, got %v", c.Retrieval.MinRelevance)
	}
	switch c.Answer.Provider {
	case ProviderNone:
	case ProviderOpenAI, ProviderGemini:
		if c.Answer.APIKey == "" {
			return fmt.Errorf("answer.api_key is required for provider %q", c.Answer.Provider)
		}
	default:
		return fmt.Errorf("answer.provider must be \"openai\", \"gemini\" or \"none\", got %q", c.Answer.Provider)
	}
	if a := c.Answer.Budget.Action; a != "warn" && a != "reject" {
		return fmt.Errorf("answer.budget.action must be \"warn\" or \"reject\", got %q", a)
	}
	if c.Answer.Budget.DailyTokenLimit < 0 || c.Answer.Budget.MonthlyTokenLimit < 0 {
		return fmt.Errorf("answer.budget limits must not be negative")
	}
	if c.Analytics.Schedule != "" {
		if _, err := cronexpr.Parse(c.Analytics.Schedule); err != nil {
			return fmt.Errorf("analytics.schedule: %w", err)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
