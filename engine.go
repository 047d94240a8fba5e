package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
	openai "github.com/sashabaranov/go-openai"
)

// probePrompt is the trivial request used to test each candidate model at
// startup. Any non-empty reply counts as a pass.
const probePrompt = "Test"

const probeTimeout = 10 * time.Second

// Default candidate models per provider, tried in order until one answers.
var defaultModelCandidates = map[string][]string{
	"openai":    {"gpt-4o-mini", "gpt-3.5-turbo"},
	"anthropic": {"claude-sonnet-4-20250514", "claude-3-5-haiku-20241022"},
}

// ModelClient is the minimal surface the verifier needs from a generative
// model: send a text prompt, receive a text reply.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// openaiClient backs ModelClient with the OpenAI chat completion API.
type openaiClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func (c *openaiClient) Model() string { return c.model }

func (c *openaiClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// anthropicClient backs ModelClient with the Anthropic API via llmkit.
type anthropicClient struct {
	apiKey   string
	settings types.RequestSettings
}

func (c *anthropicClient) Model() string { return c.settings.Model }

func (c *anthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	// llmkit calls are synchronous with no context plumbing; honor
	// cancellation at least at the call boundary.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resp, err := anthropic.PromptWithSettings("", prompt, "", c.apiKey, c.settings)
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	return resp.Content[0].Text, nil
}

// Engine owns the model client lifecycle. It is initialized once per
// process; a missing key or failed probes leave it permanently not ready
// for the session.
type Engine struct {
	client ModelClient
	err    error
}

// NewEngine initializes the model engine from settings and the API key.
// It never returns nil: a failed initialization yields a not-ready engine
// whose completion calls short-circuit.
func NewEngine(settings *Settings, apiKey string) *Engine {
	if apiKey == "" {
		return &Engine{err: ErrNoAPIKey}
	}

	provider := settings.Engine.Provider
	candidates := settings.Engine.Models
	if len(candidates) == 0 {
		candidates = defaultModelCandidates[provider]
	}

	build := func(model string) ModelClient {
		return buildClient(provider, model, apiKey, settings)
	}

	client, err := probeCandidates(context.Background(), candidates, build)
	if err != nil {
		return &Engine{err: err}
	}
	return &Engine{client: client}
}

// buildClient constructs the provider-specific client for one model.
func buildClient(provider, model, apiKey string, settings *Settings) ModelClient {
	switch provider {
	case "anthropic":
		return &anthropicClient{
			apiKey: apiKey,
			settings: types.RequestSettings{
				Model:       model,
				MaxTokens:   settings.Engine.MaxTokens,
				Temperature: settings.Engine.Temperature,
			},
		}
	default:
		return &openaiClient{
			client:      openai.NewClient(apiKey),
			model:       model,
			maxTokens:   settings.Engine.MaxTokens,
			temperature: float32(settings.Engine.Temperature),
		}
	}
}

// probeCandidates tries each candidate model with a trivial prompt and
// adopts the first one that returns a non-empty reply.
func probeCandidates(ctx context.Context, candidates []string, build func(model string) ModelClient) (ModelClient, error) {
	for _, model := range candidates {
		client := build(model)

		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		reply, err := client.Complete(probeCtx, probePrompt)
		cancel()

		if err != nil {
			debugLog("model %s failed probe: %v", model, err)
			continue
		}
		if strings.TrimSpace(reply) == "" {
			debugLog("model %s returned empty probe reply", model)
			continue
		}
		log.Printf("✓ AI engine ready: %s", model)
		return client, nil
	}
	return nil, ErrNoModel
}

// Ready reports whether a model was adopted at startup.
func (e *Engine) Ready() bool {
	return e != nil && e.client != nil
}

// ModelName returns the adopted model identifier, or "" when not ready.
func (e *Engine) ModelName() string {
	if !e.Ready() {
		return ""
	}
	return e.client.Model()
}

// Err returns the initialization failure, if any.
func (e *Engine) Err() error {
	if e == nil {
		return ErrEngineNotReady
	}
	return e.err
}

// Complete sends a prompt to the adopted model.
func (e *Engine) Complete(ctx context.Context, prompt string) (string, error) {
	if !e.Ready() {
		return "", ErrEngineNotReady
	}
	return e.client.Complete(ctx, prompt)
}
