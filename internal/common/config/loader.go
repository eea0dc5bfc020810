// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like BEDROCK_KNOWLEDGE_BASE_ID
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if not found
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the current directory or the project root,
// so tests and locally-run binaries pick up the same credentials.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "testpromptgen"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-east-1"
	}
	if cfg.Bedrock.NumberOfResults == 0 {
		cfg.Bedrock.NumberOfResults = 5
	}
	if cfg.Bedrock.SearchType == "" {
		cfg.Bedrock.SearchType = "HYBRID"
	}
	if cfg.Bedrock.MaxTokens == 0 {
		cfg.Bedrock.MaxTokens = 2048
	}
	if cfg.Bedrock.Temperature == 0 {
		cfg.Bedrock.Temperature = 0.7
	}
	if cfg.Bedrock.TopP == 0 {
		cfg.Bedrock.TopP = 0.9
	}
	if cfg.Storage.PresignTTL == 0 {
		cfg.Storage.PresignTTL = 24
	}
	if cfg.Storage.TempDir == "" {
		cfg.Storage.TempDir = os.TempDir()
	}
	if cfg.Storage.ContentType == "" {
		cfg.Storage.ContentType = "text/plain"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// overrideFromEnv fills fields that are still empty after viper expansion.
// Lambda deployments configure everything through plain environment variables.
func overrideFromEnv(cfg *Config) {
	if cfg.AWS.Region == "" {
		if val := os.Getenv("AWS_REGION"); val != "" {
			cfg.AWS.Region = val
		}
	}
	if val := os.Getenv("BEDROCK_KNOWLEDGE_BASE_ID"); val != "" {
		cfg.Bedrock.KnowledgeBaseID = val
	}
	if val := os.Getenv("BEDROCK_MODEL_ARN"); val != "" {
		cfg.Bedrock.ModelARN = val
	}
	if val := os.Getenv("STORAGE_BUCKET"); val != "" {
		cfg.Storage.Bucket = val
	}
}
