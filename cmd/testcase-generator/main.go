// cmd/testcase-generator/main.go
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	awsclients "github.com/closedai-agentic-ai/testpromptgen/internal/common/aws"
	"github.com/closedai-agentic-ai/testpromptgen/internal/common/config"
	"github.com/closedai-agentic-ai/testpromptgen/internal/common/logger"
	"github.com/closedai-agentic-ai/testpromptgen/internal/common/observability"
	"github.com/closedai-agentic-ai/testpromptgen/internal/generation"
	"github.com/closedai-agentic-ai/testpromptgen/internal/handler"
	"github.com/closedai-agentic-ai/testpromptgen/internal/prompt"
	"github.com/closedai-agentic-ai/testpromptgen/internal/storage"
)

const defaultAppPackage = "com.example.mobileapp"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zlog.Sync() }()
	appLog := logger.NewZapAdapter(zlog)

	bedrock, err := awsclients.NewBedrockAgentClient(ctx, cfg.AWS.Region)
	if err != nil {
		log.Fatalf("init bedrock client: %v", err)
	}
	s3c, err := awsclients.NewS3Client(ctx, cfg.AWS.Region)
	if err != nil {
		log.Fatalf("init s3 client: %v", err)
	}

	obs := observability.New("testcase-generator")
	defer obs.Shutdown()

	appPackage := os.Getenv("APP_PACKAGE")
	if appPackage == "" {
		appPackage = defaultAppPackage
	}

	store := storage.NewStore(s3c, s3c, cfg.Storage, appLog)
	h := handler.New(
		cfg,
		generation.NewClient(bedrock, appLog),
		store,
		prompt.MobileTestCases,
		handler.TestCaseShaper{
			Store:      store,
			LinkTTL:    time.Duration(cfg.Storage.PresignTTL) * time.Hour,
			AppPackage: appPackage,
		},
		appLog,
		obs,
	)

	lambda.Start(h.Handle)
}
