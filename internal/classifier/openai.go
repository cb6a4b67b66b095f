package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/DmtrPpl/vat-bot/internal/infrastructure/metrics"
)

const classifyPrompt = `You are a bookkeeping assistant. Classify one free-text transaction line.

Line: %q
Currency: %s
VAT rate: %s%%

Answer only with JSON in this exact shape:
{
  "type": "income" or "expense",
  "amount_type": "net", "gross" or "unknown",
  "vat_applicable": true or false,
  "category": one of "sales", "services", "hardware", "software", "rent", "transport", "internet", "tax", "other",
  "description": short human description of the transaction,
  "date": "YYYY-MM-DD" if the line names a date, otherwise ""
}

Omit any field you are not sure about.`

// OpenAIClassifier asks a chat model to classify one line. Any transport
// error, empty response or unparseable body downgrades to Unavailable so
// the entry is still built from defaults.
type OpenAIClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewOpenAIClassifier creates an OpenAIClassifier.
func NewOpenAIClassifier(client *openai.Client, model string, timeout time.Duration, log zerolog.Logger) *OpenAIClassifier {
	return &OpenAIClassifier{
		client:  client,
		model:   model,
		timeout: timeout,
		log:     log.With().Str("component", "classifier").Logger(),
	}
}

// Classify implements Classifier. It calls the model at most once per
// line, with a bounded timeout, and never retries.
func (c *OpenAIClassifier) Classify(ctx context.Context, req Request) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(classifyPrompt, req.RawLine, req.Currency, req.VATRatePercent.String())

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   300,
	})
	metrics.ClassifierDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ClassifierRequests.WithLabelValues("error").Inc()
		c.log.Warn().Err(err).Str("line", req.RawLine).Msg("classification request failed")
		return Unavailable
	}
	if len(resp.Choices) == 0 {
		metrics.ClassifierRequests.WithLabelValues("empty").Inc()
		c.log.Warn().Str("line", req.RawLine).Msg("classifier returned no choices")
		return Unavailable
	}

	body := stripCodeFence(resp.Choices[0].Message.Content)

	var fields Fields
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		metrics.ClassifierRequests.WithLabelValues("unparseable").Inc()
		c.log.Warn().Err(err).Str("response", body).Msg("failed to parse classifier response")
		return Unavailable
	}

	metrics.ClassifierRequests.WithLabelValues("ok").Inc()
	return Result{Available: true, Fields: fields}
}

// stripCodeFence unwraps responses the model wrapped in markdown fences.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
