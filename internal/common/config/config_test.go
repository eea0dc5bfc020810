// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, int32(5), cfg.Bedrock.NumberOfResults)
	assert.Equal(t, "HYBRID", cfg.Bedrock.SearchType)
	assert.Equal(t, int32(2048), cfg.Bedrock.MaxTokens)
	assert.Equal(t, float32(0.7), cfg.Bedrock.Temperature)
	assert.Equal(t, float32(0.9), cfg.Bedrock.TopP)
	assert.Equal(t, 24, cfg.Storage.PresignTTL)
	assert.Equal(t, "text/plain", cfg.Storage.ContentType)
	assert.NotEmpty(t, cfg.Storage.TempDir)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestApplyDefaults_DoesNotOverride(t *testing.T) {
	cfg := Config{
		Bedrock: BedrockConfig{NumberOfResults: 10, SearchType: "SEMANTIC"},
	}
	applyDefaults(&cfg)

	assert.Equal(t, int32(10), cfg.Bedrock.NumberOfResults)
	assert.Equal(t, "SEMANTIC", cfg.Bedrock.SearchType)
}

func TestValidate(t *testing.T) {
	valid := Config{
		AWS: AWSConfig{Region: "us-east-1"},
		Bedrock: BedrockConfig{
			KnowledgeBaseID: "KB123",
			ModelARN:        "arn:aws:bedrock:us-east-1::foundation-model/anthropic.claude-v2",
		},
		Storage: StorageConfig{Bucket: "artifacts"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing region", func(c *Config) { c.AWS.Region = "" }},
		{"missing knowledge base", func(c *Config) { c.Bedrock.KnowledgeBaseID = "" }},
		{"missing model arn", func(c *Config) { c.Bedrock.ModelARN = "" }},
		{"missing bucket", func(c *Config) { c.Storage.Bucket = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("BEDROCK_KNOWLEDGE_BASE_ID", "KB-FROM-ENV")
	t.Setenv("STORAGE_BUCKET", "bucket-from-env")

	var cfg Config
	overrideFromEnv(&cfg)

	assert.Equal(t, "KB-FROM-ENV", cfg.Bedrock.KnowledgeBaseID)
	assert.Equal(t, "bucket-from-env", cfg.Storage.Bucket)
}
