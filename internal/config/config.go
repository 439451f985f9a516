package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Log struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

// TwelveData configures the primary quote provider. An empty APIKey removes the
// provider from the chain.
type TwelveData struct {
	APIKey                string `json:"api_key"`
	BaseURL               string `json:"base_url"`
	MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
	Burst                 int    `json:"burst"`
	CacheTTLSeconds       int    `json:"cache_ttl_sec"`
	CacheMaxItems         int    `json:"cache_max_items"`
}

// Yahoo configures the secondary quote provider.
type Yahoo struct {
	BaseURL               string `json:"base_url"`
	Range                 string `json:"range"`
	MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
	Burst                 int    `json:"burst"`
}

type Storage struct {
	Path string `json:"path"`
}

type Display struct {
	Currency string `json:"currency"`
}

type Config struct {
	Server     Server     `json:"server"`
	Log        Log        `json:"log"`
	TwelveData TwelveData `json:"twelvedata"`
	Yahoo      Yahoo      `json:"yahoo"`
	Storage    Storage    `json:"storage"`
	Display    Display    `json:"display"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 10},
		Log:    Log{Level: "info"},
		TwelveData: TwelveData{
			BaseURL:              "https://api.twelvedata.com",
			MaxRequestsPerMinute: 8,
			Burst:                8,
			CacheTTLSeconds:      15,
			CacheMaxItems:        5000,
		},
		Yahoo: Yahoo{
			BaseURL: "https://query1.finance.yahoo.com",
			Range:   "1d",
		},
		Storage: Storage{Path: "rebalancer.db"},
		Display: Display{Currency: "USD"},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. A .env file in the working directory is loaded into the
// environment first; environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server.port is required")
	}
	if c.Server.RequestTimeoutSec <= 0 {
		return fmt.Errorf("server.request_timeout_sec must be positive, got %d", c.Server.RequestTimeoutSec)
	}
	if c.TwelveData.APIKey != "" && c.TwelveData.BaseURL == "" {
		return errors.New("twelvedata.base_url is required when an api key is set")
	}
	if c.Yahoo.BaseURL == "" {
		return errors.New("yahoo.base_url is required")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if x, ok := envInt("REQUEST_TIMEOUT_SEC"); ok && x > 0 {
		cfg.Server.RequestTimeoutSec = x
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v, ok := envBool("LOG_PRETTY"); ok {
		cfg.Log.Pretty = v
	}

	if v := os.Getenv("TWELVEDATA_API_KEY"); v != "" {
		cfg.TwelveData.APIKey = v
	}
	if v := os.Getenv("TWELVEDATA_BASE_URL"); v != "" {
		cfg.TwelveData.BaseURL = v
	}
	if x, ok := envInt("TWELVEDATA_MAX_RPM"); ok && x >= 0 {
		cfg.TwelveData.MaxRequestsPerMinute = x
	}
	if x, ok := envInt("TWELVEDATA_BURST"); ok && x > 0 {
		cfg.TwelveData.Burst = x
	}
	if x, ok := envInt("TWELVEDATA_MIN_INTERVAL_SEC"); ok && x >= 0 {
		cfg.TwelveData.MinRequestIntervalSec = x
	}
	if x, ok := envInt("TWELVEDATA_CACHE_TTL_SEC"); ok && x >= 0 {
		cfg.TwelveData.CacheTTLSeconds = x
	}
	if x, ok := envInt("TWELVEDATA_CACHE_MAX_ITEMS"); ok && x > 0 {
		cfg.TwelveData.CacheMaxItems = x
	}

	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Yahoo.BaseURL = v
	}
	if v := os.Getenv("YAHOO_RANGE"); v != "" {
		cfg.Yahoo.Range = v
	}
	if x, ok := envInt("YAHOO_MAX_RPM"); ok && x >= 0 {
		cfg.Yahoo.MaxRequestsPerMinute = x
	}
	if x, ok := envInt("YAHOO_BURST"); ok && x > 0 {
		cfg.Yahoo.Burst = x
	}
	if x, ok := envInt("YAHOO_MIN_INTERVAL_SEC"); ok && x >= 0 {
		cfg.Yahoo.MinRequestIntervalSec = x
	}

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("DISPLAY_CURRENCY"); v != "" {
		cfg.Display.Currency = strings.ToUpper(v)
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	var x int
	if _, err := fmt.Sscanf(v, "%d", &x); err != nil {
		return 0, false
	}
	return x, true
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true, true
	case "0", "false", "no", "n":
		return false, true
	}
	return false, false
}

// SplitCSV splits a comma-separated list, dropping blanks.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
