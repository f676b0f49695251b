package ai

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/listo-app/listo/internal/model"
)

const (
	defaultModel     = "gemini-2.0-flash"
	defaultMaxTokens = 4096
	defaultTimeout   = 45 * time.Second
)

// GeminiClient implements Generator on the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int32
	timeout   time.Duration
	log       *zap.Logger
}

var _ Generator = (*GeminiClient)(nil)

// NewGemini creates a Gemini-backed generator. It returns ErrDisabled when
// cfg carries no API key.
func NewGemini(ctx context.Context, cfg model.AIConfig, log *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrDisabled
	}
	if log == nil {
		log = zap.NewNop()
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	g := &GeminiClient{
		client:    client,
		model:     cfg.Model,
		maxTokens: int32(cfg.MaxOutputTokens),
		timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
		log:       log.Named("ai"),
	}
	if g.model == "" {
		g.model = defaultModel
	}
	if g.maxTokens <= 0 {
		g.maxTokens = defaultMaxTokens
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}
	return g, nil
}

// Generate implements Generator.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, existing []model.Item) ([]model.Draft, error) {
	return g.drafts(ctx, "generate", generatePrompt(prompt, existing))
}

// Manipulate implements Generator.
func (g *GeminiClient) Manipulate(ctx context.Context, instruction string, items []model.Item) ([]model.Draft, error) {
	return g.drafts(ctx, "manipulate", manipulatePrompt(instruction, items))
}

// Suggest implements Generator.
func (g *GeminiClient) Suggest(ctx context.Context, items []model.Item) ([]model.Draft, error) {
	return g.drafts(ctx, "suggest", suggestPrompt(items))
}

// Dictate implements Generator.
func (g *GeminiClient) Dictate(ctx context.Context, transcript string, items []model.Item) ([]model.Draft, error) {
	return g.drafts(ctx, "dictate", dictatePrompt(transcript, items))
}

// Translate implements Generator.
func (g *GeminiClient) Translate(ctx context.Context, title, description string, contents []string, lang string) (*Translation, error) {
	text, err := g.call(ctx, "translate", translateSystemPrompt, translatePrompt(title, description, contents, lang))
	if err != nil {
		return nil, err
	}
	tr, err := decodeTranslation(text, len(contents))
	if err != nil {
		return nil, fmt.Errorf("translating into %s: %w", lang, err)
	}
	return tr, nil
}

func (g *GeminiClient) drafts(ctx context.Context, op, prompt string) ([]model.Draft, error) {
	text, err := g.call(ctx, op, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	drafts, err := decodeDrafts(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return drafts, nil
}

// call sends one request and returns the response text.
func (g *GeminiClient) call(ctx context.Context, op, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		MaxOutputTokens:   g.maxTokens,
	})
	if err != nil {
		g.log.Warn("gemini call failed", zap.String("op", op), zap.Error(err))
		return "", fmt.Errorf("calling Gemini (%s): %w", op, err)
	}

	text := result.Text()
	g.log.Debug("gemini call",
		zap.String("op", op),
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_bytes", len(text)))
	return text, nil
}
