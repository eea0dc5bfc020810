// internal/handler/models.go
package handler

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Event is the inbound invocation payload. Body may be absent, a JSON
// object, or a JSON-encoded string carrying the same object.
type Event struct {
	Body json.RawMessage `json:"body"`
}

// PRNumber accepts both JSON string and number forms and renders as a string.
type PRNumber string

func (p *PRNumber) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PRNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PRNumber(n.String())
	return nil
}

func (p PRNumber) String() string {
	if p == "" {
		return "0"
	}
	return string(p)
}

// Int returns the numeric value, or 0 if the field was not numeric.
func (p PRNumber) Int() int {
	n, _ := strconv.Atoi(string(p))
	return n
}

// Request is the normalized request record for one invocation. Everything is
// optional; missing fields fall back to static defaults.
type Request struct {
	Repository    string   `json:"repository"`
	PRNumber      PRNumber `json:"pr_number"`
	Diff          string   `json:"diff"`
	PRDescription string   `json:"pr_description"`
	Branch        string   `json:"branch"`
	CommitSHA     string   `json:"commitSha"`
	RepositoryURL string   `json:"repositoryUrl"`

	KnowledgeBaseID string   `json:"knowledgeBaseId"`
	ModelID         string   `json:"modelId"`
	NumberOfResults int32    `json:"numberOfResults"`
	SearchType      string   `json:"searchType"`
	MaxTokens       int32    `json:"maxTokens"`
	Temperature     *float32 `json:"temperature"`
	TopP            *float32 `json:"topP"`
	IncludeMetadata *bool    `json:"includeMetadata"`
}

// GenerationParams is the resolved tuning for one generation call.
type GenerationParams struct {
	KnowledgeBaseID string
	ModelARN        string
	NumberOfResults int32
	SearchType      string
	MaxTokens       int32
	Temperature     float32
	TopP            float32
}

// GenerationResult is the answer from the retrieval-and-generation service.
type GenerationResult struct {
	GeneratedText string
	SessionID     string
	Params        GenerationParams
}

// Artifact describes the uploaded object.
type Artifact struct {
	Key      string
	FileName string
	Location string
	Size     int
}

// clientErrorBody is the 400 response body.
type clientErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// serverErrorBody is the 500 response body.
type serverErrorBody struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}
