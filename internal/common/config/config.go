// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Bedrock BedrockConfig `mapstructure:"bedrock"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// BedrockConfig holds the knowledge-base query settings and the static
// generation-tuning defaults applied when the request omits them.
type BedrockConfig struct {
	KnowledgeBaseID string  `mapstructure:"knowledge_base_id"`
	ModelARN        string  `mapstructure:"model_arn"`
	NumberOfResults int32   `mapstructure:"number_of_results"`
	SearchType      string  `mapstructure:"search_type"`
	MaxTokens       int32   `mapstructure:"max_tokens"`
	Temperature     float32 `mapstructure:"temperature"`
	TopP            float32 `mapstructure:"top_p"`
}

// StorageConfig holds the artifact store settings.
type StorageConfig struct {
	Bucket      string `mapstructure:"bucket"`
	PresignTTL  int    `mapstructure:"presign_ttl"` // hours
	TempDir     string `mapstructure:"temp_dir"`
	ContentType string `mapstructure:"content_type"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Validate checks the fields every deployment needs before serving traffic.
func (c *Config) Validate() error {
	if c.AWS.Region == "" {
		return fmt.Errorf("aws.region is required")
	}
	if c.Bedrock.KnowledgeBaseID == "" {
		return fmt.Errorf("bedrock.knowledge_base_id is required")
	}
	if c.Bedrock.ModelARN == "" {
		return fmt.Errorf("bedrock.model_arn is required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	return nil
}
