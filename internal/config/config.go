// Package config provides Viper-based hierarchical configuration:
// defaults, then an optional YAML config file, then KUENTA_* environment
// variables, each layer overriding the previous one.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var envOnce sync.Once

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	OCR struct {
		Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
		DPI        float64 `mapstructure:"dpi" yaml:"dpi"`
		Language   string  `mapstructure:"language" yaml:"language"`
		StopMarker string  `mapstructure:"stop_marker" yaml:"stop_marker"`
	} `mapstructure:"ocr" yaml:"ocr"`

	Categorization struct {
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
		RulesFile           string  `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Learning struct {
		MinFrequency        int     `mapstructure:"min_frequency" yaml:"min_frequency"`
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
	} `mapstructure:"learning" yaml:"learning"`

	Similarity struct {
		Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
	} `mapstructure:"similarity" yaml:"similarity"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`
}

// LoadEnv loads a .env file from the working directory once, if present.
func LoadEnv() {
	envOnce.Do(func() {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return
		}
		_ = godotenv.Load(".env")
	})
}

// InitializeConfig builds the configuration: defaults, then an optional
// config.yaml from ~/.kuenta or the working directory, then KUENTA_*
// environment variables.
func InitializeConfig() (*Config, error) {
	LoadEnv()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.kuenta")
	v.AddConfigPath(".kuenta")
	v.AddConfigPath(".")

	v.SetEnvPrefix("KUENTA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.path", "kuenta.db")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.stop_marker", "Statement of Accounts")

	v.SetDefault("categorization.confidence_threshold", 60.0)
	v.SetDefault("categorization.rules_file", "")

	v.SetDefault("learning.min_frequency", 3)
	v.SetDefault("learning.confidence_threshold", 0.8)

	v.SetDefault("similarity.threshold", 0.6)

	v.SetDefault("batch.workers", 4)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}
	if config.OCR.DPI < 72 || config.OCR.DPI > 1200 {
		return fmt.Errorf("ocr.dpi must be between 72 and 1200, got: %g", config.OCR.DPI)
	}
	if config.Categorization.ConfidenceThreshold < 0 || config.Categorization.ConfidenceThreshold > 100 {
		return fmt.Errorf("categorization.confidence_threshold must be between 0 and 100, got: %g", config.Categorization.ConfidenceThreshold)
	}
	if config.Learning.MinFrequency < 1 {
		return fmt.Errorf("learning.min_frequency must be at least 1, got: %d", config.Learning.MinFrequency)
	}
	if config.Learning.ConfidenceThreshold < 0 || config.Learning.ConfidenceThreshold > 1 {
		return fmt.Errorf("learning.confidence_threshold must be between 0.0 and 1.0, got: %g", config.Learning.ConfidenceThreshold)
	}
	if config.Similarity.Threshold < 0 || config.Similarity.Threshold > 1 {
		return fmt.Errorf("similarity.threshold must be between 0.0 and 1.0, got: %g", config.Similarity.Threshold)
	}
	if config.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got: %d", config.Batch.Workers)
	}
	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger per the Log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
