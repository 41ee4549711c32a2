package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/synapse-net/go-backend/internal/cfg"
	"github.com/synapse-net/go-backend/pkg/logger"
)

const systemPrompt = `You are a feedback quality analyzer. Your job is to determine if feedback is constructive.

Constructive feedback:
- Provides specific, actionable suggestions
- Is respectful and professional
- Explains why something could be improved
- Offers solutions or alternatives
- Is relevant to the context

Non-constructive feedback:
- Is vague or generic ("good job", "nice")
- Is disrespectful or hostile
- Provides no actionable information
- Is irrelevant or spam

Respond with JSON format: {"is_constructive": boolean, "reason": "brief explanation"}`

// LLMClassifier отправляет фидбек внешней модели. Любой сбой транспорта или
// парсинга деградирует в неконструктивный вердикт: начисление очков не должно
// зависеть от доступности провайдера.
type LLMClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  logger.Logger
}

type llmVerdict struct {
	IsConstructive bool   `json:"is_constructive"`
	Reason         string `json:"reason"`
}

func NewLLMClassifier(cfg *cfg.ImpactCfg, logger logger.Logger) *LLMClassifier {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &LLMClassifier{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (c *LLMClassifier) Classify(ctx context.Context, feedback string) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Analyze this feedback: " + feedback},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
	})
	if err != nil {
		c.logger.Warnf("feedback analysis failed, treating as not constructive: %v", err)
		return false, fmt.Sprintf("Analysis failed: %v", err)
	}

	if len(resp.Choices) == 0 {
		return false, "Analysis failed: empty response"
	}

	var verdict llmVerdict
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &verdict); err != nil {
		c.logger.Warnf("feedback verdict parse failed: %v", err)
		return false, fmt.Sprintf("Analysis failed: %v", err)
	}

	return verdict.IsConstructive, verdict.Reason
}
