// internal/handler/handler.go
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"github.com/closedai-agentic-ai/testpromptgen/internal/common/config"
	stderrors "github.com/closedai-agentic-ai/testpromptgen/internal/common/errors"
	"github.com/closedai-agentic-ai/testpromptgen/internal/common/logger"
	"github.com/closedai-agentic-ai/testpromptgen/internal/common/metrics"
	"github.com/closedai-agentic-ai/testpromptgen/internal/common/observability"
	"github.com/closedai-agentic-ai/testpromptgen/internal/prompt"
)

const timestampLayout = "20060102-150405"

// GenerationClient is the narrow interface over the retrieval-and-generation
// service. Any failure propagates unmodified; there is no retry here.
type GenerationClient interface {
	Generate(ctx context.Context, query string, params GenerationParams) (*GenerationResult, error)
}

// ArtifactStore persists one artifact per invocation and can mint a
// time-limited retrieval link for an uploaded key.
type ArtifactStore interface {
	Save(ctx context.Context, key string, payload []byte, tags map[string]string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ShapeInput carries everything a response shaper may use.
type ShapeInput struct {
	Req      *Request
	Query    string
	Gen      *GenerationResult
	Artifact *Artifact
}

// ResponseShaper decides the object key layout and the success body for one
// deployment variant.
type ResponseShaper interface {
	Name() string
	ObjectKey(req *Request, timestamp string) string
	Shape(ctx context.Context, in ShapeInput) (interface{}, error)
}

// Handler orchestrates one invocation: parse, generate, persist, shape.
type Handler struct {
	cfg       *config.Config
	generator GenerationClient
	store     ArtifactStore
	template  prompt.Template
	shaper    ResponseShaper
	logger    logger.Logger
	obs       *observability.Observability
}

func New(cfg *config.Config, generator GenerationClient, store ArtifactStore, template prompt.Template, shaper ResponseShaper, log logger.Logger, obs *observability.Observability) *Handler {
	return &Handler{
		cfg:       cfg,
		generator: generator,
		store:     store,
		template:  template,
		shaper:    shaper,
		logger: log.With(map[string]interface{}{
			"handler": shaper.Name(),
		}),
		obs: obs,
	}
}

func (h *Handler) Handle(ctx context.Context, event Event) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	log := h.logger.With(map[string]interface{}{
		"requestId": requestID(ctx),
	})

	req, err := parseRequest(event)
	if err != nil {
		stdErr := stderrors.NewRequestParseFailedError(err)
		log.WithError(err).Warn("rejecting malformed request body", nil)
		h.record(ctx, "client_error", stdErr, time.Since(start))
		return h.clientErrorResponse(stdErr), nil
	}

	query := h.template(prompt.Input{
		Repository:    req.Repository,
		PRNumber:      req.PRNumber.String(),
		Diff:          req.Diff,
		PRDescription: req.PRDescription,
	})
	params := h.resolveParams(req)

	log.Info("querying knowledge base", map[string]interface{}{
		"repository":      req.Repository,
		"prNumber":        req.PRNumber.String(),
		"knowledgeBaseId": params.KnowledgeBaseID,
		"queryLength":     len(query),
	})

	genStart := time.Now()
	gen, err := h.generator.Generate(ctx, query, params)
	metrics.StageDuration.WithLabelValues(h.shaper.Name(), "generate").Observe(time.Since(genStart).Seconds())
	if err != nil {
		stdErr := stderrors.NewGenerationFailedError(err)
		log.WithError(err).Error("generation call failed", nil)
		h.record(ctx, "server_error", stdErr, time.Since(start))
		return h.serverErrorResponse(err), nil
	}

	timestamp := time.Now().UTC().Format(timestampLayout)
	key := h.shaper.ObjectKey(req, timestamp)
	payload := buildPayload(req, gen, timestamp)

	uploadStart := time.Now()
	location, err := h.store.Save(ctx, key, payload, artifactTags(gen, timestamp))
	metrics.StageDuration.WithLabelValues(h.shaper.Name(), "upload").Observe(time.Since(uploadStart).Seconds())
	if err != nil {
		stdErr := stderrors.NewArtifactUploadFailedError(key, err)
		// The generated text is discarded here; log enough to replay the session.
		log.WithError(err).Error("artifact upload failed", map[string]interface{}{
			"objectKey":     key,
			"sessionId":     gen.SessionID,
			"generatedSize": len(gen.GeneratedText),
		})
		h.record(ctx, "server_error", stdErr, time.Since(start))
		return h.serverErrorResponse(err), nil
	}
	metrics.ArtifactBytes.WithLabelValues(h.shaper.Name()).Observe(float64(len(payload)))

	artifact := &Artifact{
		Key:      key,
		FileName: path.Base(key),
		Location: location,
		Size:     len(payload),
	}

	body, err := h.shaper.Shape(ctx, ShapeInput{Req: req, Query: query, Gen: gen, Artifact: artifact})
	if err != nil {
		stdErr := stderrors.Normalize(err)
		log.WithError(err).Error("response shaping failed", map[string]interface{}{
			"objectKey": key,
		})
		h.record(ctx, "server_error", stdErr, time.Since(start))
		return h.serverErrorResponse(err), nil
	}

	log.Info("invocation completed", map[string]interface{}{
		"s3Location": location,
		"sessionId":  gen.SessionID,
		"sizeBytes":  artifact.Size,
	})
	h.record(ctx, "success", nil, time.Since(start))
	return h.successResponse(body), nil
}

// parseRequest decodes the optional body. An absent body yields an empty
// request; a malformed JSON string is a client error and must not reach the
// remote call.
func parseRequest(event Event) (*Request, error) {
	var req Request
	raw := event.Body
	trimmed := strings.TrimSpace(string(raw))
	if len(raw) == 0 || trimmed == "null" {
		return &req, nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, err
		}
		if strings.TrimSpace(encoded) == "" {
			return &req, nil
		}
		if err := json.Unmarshal([]byte(encoded), &req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// resolveParams applies the configured defaults for any knob the request left
// unset.
func (h *Handler) resolveParams(req *Request) GenerationParams {
	p := GenerationParams{
		KnowledgeBaseID: h.cfg.Bedrock.KnowledgeBaseID,
		ModelARN:        h.cfg.Bedrock.ModelARN,
		NumberOfResults: h.cfg.Bedrock.NumberOfResults,
		SearchType:      h.cfg.Bedrock.SearchType,
		MaxTokens:       h.cfg.Bedrock.MaxTokens,
		Temperature:     h.cfg.Bedrock.Temperature,
		TopP:            h.cfg.Bedrock.TopP,
	}
	if req.KnowledgeBaseID != "" {
		p.KnowledgeBaseID = req.KnowledgeBaseID
	}
	if req.ModelID != "" {
		p.ModelARN = req.ModelID
	}
	if req.NumberOfResults > 0 {
		p.NumberOfResults = req.NumberOfResults
	}
	if req.SearchType != "" {
		p.SearchType = req.SearchType
	}
	if req.MaxTokens > 0 {
		p.MaxTokens = req.MaxTokens
	}
	if req.Temperature != nil {
		p.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		p.TopP = *req.TopP
	}
	return p
}

// buildPayload serializes the generated answer plus metadata into the
// artifact body.
func buildPayload(req *Request, gen *GenerationResult, timestamp string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Repository: %s\n", req.Repository)
	fmt.Fprintf(&b, "PR Number: %s\n", req.PRNumber.String())
	fmt.Fprintf(&b, "Knowledge Base: %s\n", gen.Params.KnowledgeBaseID)
	fmt.Fprintf(&b, "Model: %s\n", gen.Params.ModelARN)
	fmt.Fprintf(&b, "Session: %s\n", gen.SessionID)
	fmt.Fprintf(&b, "Generated: %s\n", timestamp)
	b.WriteString("\n")
	b.WriteString(gen.GeneratedText)
	return []byte(b.String())
}

func artifactTags(gen *GenerationResult, timestamp string) map[string]string {
	return map[string]string{
		"knowledge-base-id": gen.Params.KnowledgeBaseID,
		"model-id":          gen.Params.ModelARN,
		"search-type":       gen.Params.SearchType,
		"timestamp":         timestamp,
	}
}

func (h *Handler) record(ctx context.Context, outcome string, stdErr *stderrors.StandardError, elapsed time.Duration) {
	metrics.HandlerInvocations.WithLabelValues(h.shaper.Name(), outcome).Inc()
	if stdErr != nil {
		metrics.HandlerFailures.WithLabelValues(h.shaper.Name(), string(stdErr.Code)).Inc()
	}
	if h.obs != nil {
		h.obs.RecordInvocation(ctx, outcome)
		h.obs.RecordDuration(ctx, elapsed, outcome)
	}
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
