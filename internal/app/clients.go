package app

import (
	"context"
	"errors"

	"github.com/yungbote/docforge-backend/internal/generation"
	"github.com/yungbote/docforge-backend/internal/observability"
	"github.com/yungbote/docforge-backend/internal/platform/llm"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

var errLLMNotConfigured = errors.New("LLM_API_KEY is not configured")

type Clients struct {
	LLM       llm.Client
	Generator generation.Generator
	Metrics   *observability.Metrics
}

// wireClients builds the outbound clients. Without an API key the service
// still starts; every generation request then fails with generation_failed.
func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	if cfg.LLM.APIKey == "" {
		log.Warn("LLM_API_KEY not set; AI generation is disabled")
		return Clients{
			Generator: generation.GeneratorFunc(func(context.Context, string) (string, error) {
				return "", errLLMNotConfigured
			}),
			Metrics: metrics,
		}, nil
	}

	client, err := llm.NewClient(log, cfg.LLM)
	if err != nil {
		return Clients{}, err
	}
	return Clients{
		LLM: client,
		Generator: generation.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
			return client.GenerateText(ctx, "", prompt)
		}),
		Metrics: metrics,
	}, nil
}
