package embedding

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/synapse-net/go-backend/internal/cfg"
	"github.com/synapse-net/go-backend/internal/metrics"
	"github.com/synapse-net/go-backend/pkg/e"
	"github.com/synapse-net/go-backend/pkg/jitter"
	"github.com/synapse-net/go-backend/pkg/logger"
)

// OpenAIEmbedder — провайдер эмбеддингов через OpenAI-совместимый API.
// Вариант "local" указывает BaseURL на локальный сервис с той же схемой,
// "openai" ходит во внешний API.
type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	dimension  int
	timeout    time.Duration
	maxRetries int
	logger     logger.Logger
}

func NewOpenAIEmbedder(cfg *cfg.EmbeddingCfg, logger logger.Logger) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIEmbedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      cfg.Model,
		dimension:  cfg.Dimension,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// Embed возвращает вектор текста с retry-логикой и экспоненциальной задержкой.
// После исчерпания попыток возвращает e.ErrEmbeddingUnavailable: безопасного
// вектора по умолчанию не существует.
func (o *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	const (
		op         = "OpenAIEmbedder.Embed"
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	var lastErr error
	for attempt := 0; attempt < o.maxRetries; attempt++ {
		start := time.Now()
		vector, err := o.embed(ctx, text)
		metrics.EmbeddingRequestDuration.Observe(time.Since(start).Seconds())
		if err == nil {
			metrics.EmbeddingRequestsTotal.WithLabelValues("ok").Inc()
			return vector, nil
		}
		metrics.EmbeddingRequestsTotal.WithLabelValues("error").Inc()
		lastErr = err

		if attempt == o.maxRetries-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		o.logger.Warnf("embedding failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	o.logger.Errorf(lastErr, "all %d embedding attempts failed", o.maxRetries)

	return nil, e.Wrap(op, e.ErrEmbeddingUnavailable)
}

func (o *OpenAIEmbedder) embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(o.model),
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, e.ErrEmptyVector
	}

	vector := resp.Data[0].Embedding
	if len(vector) != o.dimension {
		return nil, fmt.Errorf("provider returned dimension %d, expected %d: %w",
			len(vector), o.dimension, e.ErrDimensionMismatch)
	}

	return vector, nil
}
