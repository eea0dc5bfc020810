// internal/generation/bedrock_test.go
package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closedai-agentic-ai/testpromptgen/internal/common/logger"
	"github.com/closedai-agentic-ai/testpromptgen/internal/handler"
)

type fakeAPI struct {
	calls     int
	lastInput *bedrockagentruntime.RetrieveAndGenerateInput
	output    *bedrockagentruntime.RetrieveAndGenerateOutput
	err       error
}

func (f *fakeAPI) RetrieveAndGenerate(_ context.Context, input *bedrockagentruntime.RetrieveAndGenerateInput) (*bedrockagentruntime.RetrieveAndGenerateOutput, error) {
	f.calls++
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func testParams() handler.GenerationParams {
	return handler.GenerationParams{
		KnowledgeBaseID: "KB123456",
		ModelARN:        "arn:aws:bedrock:us-east-1::foundation-model/anthropic.claude-v2",
		NumberOfResults: 5,
		SearchType:      "HYBRID",
		MaxTokens:       2048,
		Temperature:     0.7,
		TopP:            0.9,
	}
}

func TestClient_Generate(t *testing.T) {
	api := &fakeAPI{
		output: &bedrockagentruntime.RetrieveAndGenerateOutput{
			SessionId: aws.String("session-123"),
			Output: &types.RetrieveAndGenerateOutput{
				Text: aws.String("The diff touches the checkout flow."),
			},
		},
	}
	client := NewClient(api, logger.NewTestLogger(t))

	result, err := client.Generate(context.Background(), "what does this diff break?", testParams())

	require.NoError(t, err)
	assert.Equal(t, "The diff touches the checkout flow.", result.GeneratedText)
	assert.Equal(t, "session-123", result.SessionID)
	assert.Equal(t, testParams(), result.Params)

	// Request mapping
	require.Equal(t, 1, api.calls)
	in := api.lastInput
	assert.Equal(t, "what does this diff break?", aws.ToString(in.Input.Text))

	rgCfg := in.RetrieveAndGenerateConfiguration
	require.NotNil(t, rgCfg)
	assert.Equal(t, types.RetrieveAndGenerateTypeKnowledgeBase, rgCfg.Type)

	kbCfg := rgCfg.KnowledgeBaseConfiguration
	require.NotNil(t, kbCfg)
	assert.Equal(t, "KB123456", aws.ToString(kbCfg.KnowledgeBaseId))
	assert.Equal(t, testParams().ModelARN, aws.ToString(kbCfg.ModelArn))

	vector := kbCfg.RetrievalConfiguration.VectorSearchConfiguration
	require.NotNil(t, vector)
	assert.Equal(t, int32(5), aws.ToInt32(vector.NumberOfResults))
	assert.Equal(t, types.SearchType("HYBRID"), vector.OverrideSearchType)

	inference := kbCfg.GenerationConfiguration.InferenceConfig.TextInferenceConfig
	require.NotNil(t, inference)
	assert.Equal(t, int32(2048), aws.ToInt32(inference.MaxTokens))
	assert.Equal(t, float32(0.7), aws.ToFloat32(inference.Temperature))
	assert.Equal(t, float32(0.9), aws.ToFloat32(inference.TopP))
}

func TestClient_Generate_ErrorPropagatesUnmodified(t *testing.T) {
	upstream := errors.New("AccessDeniedException: not authorized")
	api := &fakeAPI{err: upstream}
	client := NewClient(api, logger.NewNoOpLogger())

	result, err := client.Generate(context.Background(), "query", testParams())

	require.Error(t, err)
	assert.Nil(t, result)
	// No wrapping, no classification
	assert.Equal(t, upstream, err)
}

func TestClient_Generate_EmptyOutput(t *testing.T) {
	api := &fakeAPI{
		output: &bedrockagentruntime.RetrieveAndGenerateOutput{
			SessionId: aws.String("session-empty"),
		},
	}
	client := NewClient(api, logger.NewNoOpLogger())

	result, err := client.Generate(context.Background(), "query", testParams())

	require.NoError(t, err)
	assert.Equal(t, "", result.GeneratedText)
	assert.Equal(t, "session-empty", result.SessionID)
}
