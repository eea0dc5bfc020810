// internal/common/aws/bedrock.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
)

type BedrockAgentClient struct {
	client *bedrockagentruntime.Client
}

func NewBedrockAgentClient(ctx context.Context, region string) (*BedrockAgentClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &BedrockAgentClient{client: bedrockagentruntime.NewFromConfig(cfg)}, nil
}

func (b *BedrockAgentClient) RetrieveAndGenerate(ctx context.Context, input *bedrockagentruntime.RetrieveAndGenerateInput) (*bedrockagentruntime.RetrieveAndGenerateOutput, error) {
	return b.client.RetrieveAndGenerate(ctx, input)
}
