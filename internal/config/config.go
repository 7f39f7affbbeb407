package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

const appDir = "ebb"

type Config struct {
	Paths Paths       `mapstructure:"paths"`
	Feed  FeedConfig  `mapstructure:"feed"`
	Open  OpenConfig  `mapstructure:"open"`
	Log   LogConfig   `mapstructure:"log"`
	UI    UIConfig    `mapstructure:"ui"`
	Keys  KeyBindings `mapstructure:"keys"`
}

// Paths holds every filesystem location the program touches. It is resolved
// once at startup and passed explicitly to the components that need it.
type Paths struct {
	ConfigDir     string `mapstructure:"config_dir"`
	CacheDir      string `mapstructure:"cache_dir"`
	FeedsFile     string `mapstructure:"feeds_file"`
	ReadStateFile string `mapstructure:"read_state_file"`
	Database      string `mapstructure:"database"`
	LogFile       string `mapstructure:"log_file"`
}

type FeedConfig struct {
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	Concurrency int           `mapstructure:"concurrency"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type OpenConfig struct {
	// Openers is tried in order; the first command found on PATH wins.
	Openers []string `mapstructure:"openers"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
}

type UIColors struct {
	Border    string `mapstructure:"border"`
	Text      string `mapstructure:"text"`
	Selected  string `mapstructure:"selected"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	FeedTitle string `mapstructure:"feed_title"`
}

type KeyBindings struct {
	Quit     string `mapstructure:"quit"`
	Open     string `mapstructure:"open"`
	MarkRead string `mapstructure:"mark_read"`
	Search   string `mapstructure:"search"`
}

func defaultConfig() *Config {
	return &Config{
		Paths: defaultPaths(),
		Feed: FeedConfig{
			HTTPTimeout: 30 * time.Second,
			Concurrency: 8,
			UserAgent:   "ebb/1.0 (feed aggregator)",
		},
		Open: OpenConfig{
			Openers: defaultOpeners(),
		},
		Log: LogConfig{
			Level: "off",
		},
		UI: UIConfig{
			Colors: UIColors{
				Border:    "#4ECDC4",
				Text:      "#EAEAEA",
				Selected:  "#1A1A2E",
				Muted:     "#94A3B8",
				Error:     "#F87171",
				FeedTitle: "#95E1D3",
			},
		},
		Keys: KeyBindings{
			Quit:     "q",
			Open:     "enter",
			MarkRead: "r",
			Search:   "/",
		},
	}
}

func defaultPaths() Paths {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		cacheDir = filepath.Join(home, ".cache")
	}

	configDir = filepath.Join(configDir, appDir)
	cacheDir = filepath.Join(cacheDir, appDir)

	return Paths{
		ConfigDir:     configDir,
		CacheDir:      cacheDir,
		FeedsFile:     filepath.Join(configDir, "feeds.txt"),
		ReadStateFile: filepath.Join(cacheDir, "read_entries.txt"),
		Database:      filepath.Join(cacheDir, "ebb.db"),
		LogFile:       filepath.Join(cacheDir, "ebb.log"),
	}
}

func defaultOpeners() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"start"}
	default:
		return []string{"xdg-open", "x-www-browser", "sensible-browser"}
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("paths", cfg.Paths)
	v.SetDefault("feed", cfg.Feed)
	v.SetDefault("open", cfg.Open)
	v.SetDefault("log", cfg.Log)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(cfg.Paths.ConfigDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("EBB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Paths.ConfigDir = expandPath(cfg.Paths.ConfigDir)
	cfg.Paths.CacheDir = expandPath(cfg.Paths.CacheDir)
	cfg.Paths.FeedsFile = expandPath(cfg.Paths.FeedsFile)
	cfg.Paths.ReadStateFile = expandPath(cfg.Paths.ReadStateFile)
	cfg.Paths.Database = expandPath(cfg.Paths.Database)
	cfg.Paths.LogFile = expandPath(cfg.Paths.LogFile)
}

// EnsureDirs creates the config and cache directories if missing.
func (p Paths) EnsureDirs() error {
	for _, dir := range []string{p.ConfigDir, p.CacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations serialize as strings for TOML readability
	feedCfg := map[string]interface{}{
		"http_timeout": config.Feed.HTTPTimeout.String(),
		"concurrency":  config.Feed.Concurrency,
		"user_agent":   config.Feed.UserAgent,
	}

	v.Set("paths", config.Paths)
	v.Set("feed", feedCfg)
	v.Set("open", config.Open)
	v.Set("log", config.Log)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
