package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Commentary provider identifiers.
const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderNone     = "none"
)

// Chat transport identifiers.
const (
	TransportTelegram = "telegram"
	TransportWhatsApp = "whatsapp"
)

// Config carries everything one run needs. It is assembled once at startup
// and treated as immutable afterwards; the pipeline never reads ambient
// state after Load returns.
type Config struct {
	Holdings     []Holding
	HoldingsFile string

	CommentaryProvider string
	GeminiAPIKey       string
	GeminiModel        string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIModel        string
	DeepSeekAPIKey     string
	DeepSeekModel      string

	Transport             string
	TelegramBotToken      string
	TelegramChatID        string
	WhatsAppPhoneNumberID string
	WhatsAppAccessToken   string
	WhatsAppRecipient     string

	MaxHeadlines    int
	FetchTimeout    time.Duration
	GenerateTimeout time.Duration
	Workers         int
	LogLevel        string
}

// DefaultConfig returns the built-in defaults. Credentials are always
// sourced from the environment, never defaulted.
func DefaultConfig() *Config {
	return &Config{
		HoldingsFile:       "holdings.json",
		CommentaryProvider: ProviderGemini,
		GeminiModel:        "gemini-2.0-flash",
		OpenAIBaseURL:      "https://api.openai.com/v1",
		OpenAIModel:        "gpt-4o-mini",
		DeepSeekModel:      "deepseek-chat",
		Transport:          TransportTelegram,
		MaxHeadlines:       3,
		FetchTimeout:       10 * time.Second,
		GenerateTimeout:    60 * time.Second,
		Workers:            4,
		LogLevel:           "info",
	}
}

// FromEnv builds a Config from environment variables on top of the
// defaults. It does not touch the holdings file; see Load.
func FromEnv() *Config {
	cfg := DefaultConfig()

	cfg.HoldingsFile = envOr("HOLDINGS_FILE", cfg.HoldingsFile)

	cfg.CommentaryProvider = strings.ToLower(envOr("COMMENTARY_PROVIDER", cfg.CommentaryProvider))
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = envOr("GEMINI_MODEL", cfg.GeminiModel)
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIBaseURL = envOr("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.OpenAIModel = envOr("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.DeepSeekAPIKey = os.Getenv("DEEPSEEK_API_KEY")
	cfg.DeepSeekModel = envOr("DEEPSEEK_MODEL", cfg.DeepSeekModel)

	cfg.Transport = strings.ToLower(envOr("TRANSPORT", cfg.Transport))
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("CHAT_ID")
	cfg.WhatsAppPhoneNumberID = os.Getenv("WHATSAPP_PHONE_NUMBER_ID")
	cfg.WhatsAppAccessToken = os.Getenv("WHATSAPP_ACCESS_TOKEN")
	cfg.WhatsAppRecipient = os.Getenv("WHATSAPP_RECIPIENT")

	cfg.MaxHeadlines = envInt("NEWS_MAX_HEADLINES", cfg.MaxHeadlines)
	cfg.FetchTimeout = envDuration("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.GenerateTimeout = envDuration("GENERATE_TIMEOUT", cfg.GenerateTimeout)
	cfg.Workers = envInt("WORKERS", cfg.Workers)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)

	return cfg
}

// Load builds the full run configuration: environment plus holdings file.
// It validates before returning, so a successful Load means the run may
// start making network calls.
func Load() (*Config, error) {
	cfg := FromEnv()

	holdings, err := LoadHoldings(cfg.HoldingsFile)
	if err != nil {
		return nil, err
	}
	cfg.Holdings = holdings

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration without performing any I/O. All
// problems are collected into a single ConfigurationError so the operator
// sees everything that is missing at once.
func (c *Config) Validate() error {
	var e ConfigurationError

	if len(c.Holdings) == 0 {
		e.add("no holdings configured")
	}
	seen := make(map[string]bool, len(c.Holdings))
	for _, h := range c.Holdings {
		if strings.TrimSpace(h.Symbol) == "" {
			e.add("holding with empty symbol")
			continue
		}
		if seen[h.Symbol] {
			e.add(fmt.Sprintf("duplicate holding symbol %s", h.Symbol))
		}
		seen[h.Symbol] = true
		if h.Shares.IsNegative() {
			e.add(fmt.Sprintf("%s: negative share count", h.Symbol))
		}
		if h.CostBasis.IsNegative() {
			e.add(fmt.Sprintf("%s: negative cost basis", h.Symbol))
		}
	}

	switch c.CommentaryProvider {
	case ProviderGemini:
		e.require(c.GeminiAPIKey, "GEMINI_API_KEY")
	case ProviderOpenAI:
		e.require(c.OpenAIAPIKey, "OPENAI_API_KEY")
	case ProviderDeepSeek:
		e.require(c.DeepSeekAPIKey, "DEEPSEEK_API_KEY")
	case ProviderNone:
		// Commentary disabled; the raw report is delivered as-is.
	default:
		e.add(fmt.Sprintf("unknown commentary provider %q", c.CommentaryProvider))
	}

	switch c.Transport {
	case TransportTelegram:
		e.require(c.TelegramBotToken, "TELEGRAM_TOKEN")
		e.require(c.TelegramChatID, "CHAT_ID")
	case TransportWhatsApp:
		e.require(c.WhatsAppPhoneNumberID, "WHATSAPP_PHONE_NUMBER_ID")
		e.require(c.WhatsAppAccessToken, "WHATSAPP_ACCESS_TOKEN")
		e.require(c.WhatsAppRecipient, "WHATSAPP_RECIPIENT")
	default:
		e.add(fmt.Sprintf("unknown transport %q", c.Transport))
	}

	if c.MaxHeadlines <= 0 {
		e.add("NEWS_MAX_HEADLINES must be positive")
	}
	if c.Workers <= 0 {
		e.add("WORKERS must be positive")
	}
	// A zero timeout expires every context immediately, silently marking
	// all positions as data errors.
	if c.FetchTimeout <= 0 {
		e.add("FETCH_TIMEOUT must be positive")
	}
	if c.GenerateTimeout <= 0 {
		e.add("GENERATE_TIMEOUT must be positive")
	}

	if len(e.Problems) > 0 {
		return &e
	}
	return nil
}

// ConfigurationError reports everything wrong with the run configuration.
// It is the only fatal error class: it is produced before any network call
// and aborts the run entirely.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + strings.Join(e.Problems, "; ")
}

func (e *ConfigurationError) add(problem string) {
	e.Problems = append(e.Problems, problem)
}

func (e *ConfigurationError) require(value, name string) {
	if strings.TrimSpace(value) == "" {
		e.add(name + " is not set")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
