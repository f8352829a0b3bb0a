// Package config loads application configuration from config.yaml and the
// environment, and owns the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	AppStore  AppStoreConfig  `yaml:"appstore" mapstructure:"appstore"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// PathsConfig pins the input and output file locations. Output paths are
// part of the pipeline's contract: the presentation layer reads them by
// name.
type PathsConfig struct {
	GooglePlayCSV    string `yaml:"google_play_csv" mapstructure:"google_play_csv"`
	CleanedAppsCSV   string `yaml:"cleaned_apps_csv" mapstructure:"cleaned_apps_csv"`
	AppStoreRawJSON  string `yaml:"appstore_raw_json" mapstructure:"appstore_raw_json"`
	AppStoreCSV      string `yaml:"appstore_csv" mapstructure:"appstore_csv"`
	CombinedCSV      string `yaml:"combined_csv" mapstructure:"combined_csv"`
	CrossPlatformCSV string `yaml:"cross_platform_csv" mapstructure:"cross_platform_csv"`
	InsightsJSON     string `yaml:"insights_json" mapstructure:"insights_json"`
	InsightsReportMD string `yaml:"insights_report_md" mapstructure:"insights_report_md"`
	D2CXLSX          string `yaml:"d2c_xlsx" mapstructure:"d2c_xlsx"`
	D2CCleanedCSV    string `yaml:"d2c_cleaned_csv" mapstructure:"d2c_cleaned_csv"`
	D2CInsightsJSON  string `yaml:"d2c_insights_json" mapstructure:"d2c_insights_json"`
	CrossRefYAML     string `yaml:"crossref_yaml" mapstructure:"crossref_yaml"`
}

// AppStoreConfig holds the review-fetch API settings.
type AppStoreConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	Host        string `yaml:"host" mapstructure:"host"`
	AppID       string `yaml:"app_id" mapstructure:"app_id"`
	Sort        string `yaml:"sort" mapstructure:"sort"`
	Country     string `yaml:"country" mapstructure:"country"`
	Lang        string `yaml:"lang" mapstructure:"lang"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AnthropicConfig holds the insight-generation model settings.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	Model       string `yaml:"model" mapstructure:"model"`
	MaxTokens   int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// StoreConfig configures the run-history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the data API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MARKETINTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("paths.google_play_csv", "./data/raw/googleplaystore.csv")
	v.SetDefault("paths.cleaned_apps_csv", "./data/processed/cleaned_apps.csv")
	v.SetDefault("paths.appstore_raw_json", "./data/raw/appstore_api.json")
	v.SetDefault("paths.appstore_csv", "./data/processed/appstore_api_cleaned.csv")
	v.SetDefault("paths.combined_csv", "./data/processed/combined_apps.csv")
	v.SetDefault("paths.cross_platform_csv", "./data/processed/cross_platform_apps.csv")
	v.SetDefault("paths.insights_json", "./data/processed/insights.json")
	v.SetDefault("paths.insights_report_md", "./reports/insights_report.md")
	v.SetDefault("paths.d2c_xlsx", "./data/raw/d2c_dataset.xlsx")
	v.SetDefault("paths.d2c_cleaned_csv", "./data/processed/d2c_cleaned.csv")
	v.SetDefault("paths.d2c_insights_json", "./data/processed/d2c_insights.json")
	v.SetDefault("appstore.sort", "mostRecent")
	v.SetDefault("appstore.country", "us")
	v.SetDefault("appstore.lang", "en")
	v.SetDefault("appstore.timeout_secs", 10)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("anthropic.timeout_secs", 120)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "./data/marketintel.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
