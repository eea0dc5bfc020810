// internal/generation/bedrock.go

// Package generation wraps the Bedrock knowledge-base RetrieveAndGenerate
// call. One synchronous call per invocation; no streaming, no retry, no
// fallback model. Failures propagate unmodified to the handler.
package generation

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"github.com/closedai-agentic-ai/testpromptgen/internal/common/logger"
	"github.com/closedai-agentic-ai/testpromptgen/internal/handler"
)

// RetrieveAndGenerateAPI is the slice of the Bedrock agent runtime client we
// use, narrowed so tests can inject a fake.
type RetrieveAndGenerateAPI interface {
	RetrieveAndGenerate(ctx context.Context, input *bedrockagentruntime.RetrieveAndGenerateInput) (*bedrockagentruntime.RetrieveAndGenerateOutput, error)
}

type Client struct {
	api    RetrieveAndGenerateAPI
	logger logger.Logger
}

func NewClient(api RetrieveAndGenerateAPI, log logger.Logger) *Client {
	return &Client{
		api:    api,
		logger: log.With(map[string]interface{}{"component": "generation"}),
	}
}

func (c *Client) Generate(ctx context.Context, query string, params handler.GenerationParams) (*handler.GenerationResult, error) {
	input := &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &types.RetrieveAndGenerateInput{
			Text: aws.String(query),
		},
		RetrieveAndGenerateConfiguration: &types.RetrieveAndGenerateConfiguration{
			Type: types.RetrieveAndGenerateTypeKnowledgeBase,
			KnowledgeBaseConfiguration: &types.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(params.KnowledgeBaseID),
				ModelArn:        aws.String(params.ModelARN),
				RetrievalConfiguration: &types.KnowledgeBaseRetrievalConfiguration{
					VectorSearchConfiguration: &types.KnowledgeBaseVectorSearchConfiguration{
						NumberOfResults:    aws.Int32(params.NumberOfResults),
						OverrideSearchType: types.SearchType(params.SearchType),
					},
				},
				GenerationConfiguration: &types.GenerationConfiguration{
					InferenceConfig: &types.InferenceConfig{
						TextInferenceConfig: &types.TextInferenceConfig{
							MaxTokens:   aws.Int32(params.MaxTokens),
							Temperature: aws.Float32(params.Temperature),
							TopP:        aws.Float32(params.TopP),
						},
					},
				},
			},
		},
	}

	out, err := c.api.RetrieveAndGenerate(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &handler.GenerationResult{
		SessionID: aws.ToString(out.SessionId),
		Params:    params,
	}
	if out.Output != nil {
		result.GeneratedText = aws.ToString(out.Output.Text)
	}

	c.logger.Debug("knowledge base answered", map[string]interface{}{
		"sessionId":  result.SessionID,
		"textLength": len(result.GeneratedText),
	})
	return result, nil
}
