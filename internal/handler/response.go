// internal/handler/response.go
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	stderrors "github.com/closedai-agentic-ai/testpromptgen/internal/common/errors"
)

const previewLength = 200

func corsHeaders(full bool) map[string]string {
	headers := map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
	if full {
		headers["Access-Control-Allow-Headers"] = "Content-Type"
		headers["Access-Control-Allow-Methods"] = "OPTIONS,POST"
	}
	return headers
}

func (h *Handler) successResponse(body interface{}) events.APIGatewayProxyResponse {
	encoded, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    corsHeaders(true),
		Body:       string(encoded),
	}
}

func (h *Handler) clientErrorResponse(stdErr *stderrors.StandardError) events.APIGatewayProxyResponse {
	encoded, _ := json.Marshal(clientErrorBody{
		Error:   stdErr.Message,
		Details: stdErr.Details,
	})
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusBadRequest,
		Headers:    corsHeaders(false),
		Body:       string(encoded),
	}
}

// serverErrorResponse surfaces the upstream failure verbatim, with a
// timestamp. No classification beyond "it failed".
func (h *Handler) serverErrorResponse(err error) events.APIGatewayProxyResponse {
	encoded, _ := json.Marshal(serverErrorBody{
		Error:     "Internal server error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    corsHeaders(false),
		Body:       string(encoded),
	}
}

// preview returns the first 200 characters of text followed by an ellipsis,
// regardless of the text length.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + "..."
}

// ==========================
// Variant shapers
// ==========================

// InsightsShaper is the review-insights deployment: envelope with the storage
// location, the assembled query, and a preview of the answer.
type InsightsShaper struct{}

func (InsightsShaper) Name() string { return "review-insights" }

func (InsightsShaper) ObjectKey(req *Request, timestamp string) string {
	return fmt.Sprintf("%s/%s/bedrock-response-%s.txt", req.Repository, req.PRNumber.String(), timestamp)
}

func (InsightsShaper) Shape(_ context.Context, in ShapeInput) (interface{}, error) {
	return map[string]interface{}{
		"message":           "Query processed successfully",
		"s3Location":        in.Artifact.Location,
		"fileName":          in.Artifact.FileName,
		"sessionId":         in.Gen.SessionID,
		"query":             in.Query,
		"knowledgeBaseId":   in.Gen.Params.KnowledgeBaseID,
		"modelId":           in.Gen.Params.ModelARN,
		"responsePreview":   preview(in.Gen.GeneratedText),
		"requestParameters": in.Req,
	}, nil
}

// TestCaseShaper is the testcase-generator deployment: the raw result object
// with a time-limited link to the uploaded instructions.
type TestCaseShaper struct {
	Store      ArtifactStore
	LinkTTL    time.Duration
	AppPackage string
}

func (TestCaseShaper) Name() string { return "testcase-generator" }

func (TestCaseShaper) ObjectKey(req *Request, timestamp string) string {
	return fmt.Sprintf("%s/testcases-%s-%s.txt", req.Repository, req.PRNumber.String(), timestamp)
}

func (s TestCaseShaper) Shape(ctx context.Context, in ShapeInput) (interface{}, error) {
	ttl := s.LinkTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	url, err := s.Store.PresignedURL(ctx, in.Artifact.Key, ttl)
	if err != nil {
		return nil, stderrors.NewPresignFailedError(in.Artifact.Key, err)
	}

	return map[string]interface{}{
		"appPackage":          s.AppPackage,
		"testName":            fmt.Sprintf("testcases-%s-pr-%s", in.Req.Repository, in.Req.PRNumber.String()),
		"testInstructionsUrl": url,
		"priority":            "high",
		"timeout":             180,
		"metadata": map[string]interface{}{
			"jiraTicketId":  "JIRA-0000",
			"commitSha":     in.Req.CommitSHA,
			"repositoryUrl": in.Req.RepositoryURL,
			"prNumber":      in.Req.PRNumber.String(),
			"branch":        in.Req.Branch,
		},
	}, nil
}
