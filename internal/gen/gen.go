// Package gen calls an OpenRouter-compatible chat completion endpoint to
// draft post bodies from compiled prompt specs.
package gen

import (
	"context"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/quenchwood/blend/internal/config"
	blenderr "github.com/quenchwood/blend/internal/errors"
)

// EnvAPIKey names the environment variable holding the API key. The key
// is never read from config files.
const EnvAPIKey = "BLEND_OPENROUTER_API_KEY"

type completions interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client drafts text with a primary model and one fallback.
type Client struct {
	chat        completions
	model       string
	fallback    string
	maxTokens   int
	temperature float64
}

// Draft is one generated post body and the model that produced it.
type Draft struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// NewClient builds a Client from config and the environment. It fails
// when no API key is set; callers that only need dry-run compilation
// should not construct a Client at all.
func NewClient(cfg *config.Config) (*Client, error) {
	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if key == "" {
		return nil, blenderr.NewInvalidRequest("generation requires " + EnvAPIKey + " to be set")
	}
	oc := openai.NewClient(
		option.WithAPIKey(key),
		option.WithBaseURL(cfg.GenBaseURL),
	)
	return &Client{
		chat:        &oc.Chat.Completions,
		model:       cfg.GenModel,
		fallback:    cfg.GenFallbackModel,
		maxTokens:   cfg.GenMaxTokens,
		temperature: cfg.GenTemperature,
	}, nil
}

// Generate sends the system and user prompts to the primary model, then
// to the fallback model if the primary call fails or returns an empty
// draft. Both failing maps to a generation-unavailable error.
func (c *Client) Generate(ctx context.Context, system, user string) (Draft, error) {
	d, err := c.complete(ctx, c.model, system, user)
	if err == nil {
		return d, nil
	}
	if ctx.Err() != nil {
		return Draft{}, ctx.Err()
	}
	if c.fallback == "" || c.fallback == c.model {
		return Draft{}, blenderr.NewGenerationUnavailable(err)
	}
	d, fbErr := c.complete(ctx, c.fallback, system, user)
	if fbErr != nil {
		return Draft{}, blenderr.NewGenerationUnavailable(err)
	}
	return d, nil
}

func (c *Client) complete(ctx context.Context, model, system, user string) (Draft, error) {
	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model:               shared.ChatModel(model),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
		Temperature:         openai.Float(c.temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return Draft{}, err
	}
	if len(resp.Choices) == 0 {
		return Draft{}, blenderr.NewInternal(errEmptyCompletion)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Draft{}, blenderr.NewInternal(errEmptyCompletion)
	}
	return Draft{Text: text, Model: model}, nil
}

var errEmptyCompletion = emptyCompletionError{}

type emptyCompletionError struct{}

func (emptyCompletionError) Error() string { return "model returned an empty completion" }
