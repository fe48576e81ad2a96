package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAssistantBaseURL = "https://generativelanguage.googleapis.com"
	defaultAssistantModel   = "gemini-2.5-flash"
	defaultAssistantTimeout = 60 * time.Second
	assistantMaxRetries     = 3
	assistantInitialBackoff = 1 * time.Second

	systemInstruction = `Você é um assistente virtual especialista em perícia médica e benefícios do INSS. Seu propósito é fornecer informações claras, objetivas e úteis para trabalhadores e segurados. Responda exclusivamente em português do Brasil. Formate suas respostas usando Markdown. Seja conciso e direto. Nunca se apresente, apenas forneça a resposta.`
)

var (
	ErrEmptyQuestion        = errors.New("Nenhuma pergunta foi fornecida.")
	ErrAssistantUnavailable = errors.New("O assistente não está disponível no momento.")
)

// AssistantConfig configures the generative AI client
type AssistantConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// AssistantClient answers user questions through the Gemini generateContent API
type AssistantClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
	renderer    *Parser
	backoff     time.Duration
}

// NewAssistantClient creates a new assistant client
func NewAssistantClient(cfg AssistantConfig, renderer *Parser) *AssistantClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAssistantBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultAssistantModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultAssistantTimeout
	}

	return &AssistantClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		renderer: renderer,
		backoff:  assistantInitialBackoff,
	}
}

// IsConfigured reports whether an API key is set
func (c *AssistantClient) IsConfigured() bool {
	return c.apiKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

// generateRequest is the body of models/{model}:generateContent
type generateRequest struct {
	SystemInstruction content          `json:"systemInstruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

// generateResponse is the subset of the generateContent response we read
type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// BuildPrompt frames the user question, optionally in the context of an article
func BuildPrompt(question, contextTitle string) string {
	if contextTitle != "" {
		return fmt.Sprintf("Com base no contexto do artigo %q, responda à seguinte pergunta do usuário: %q", contextTitle, question)
	}
	return fmt.Sprintf("Pergunta do usuário: %q", question)
}

// Ask sends the question and returns the answer rendered as HTML
func (c *AssistantClient) Ask(ctx context.Context, question, contextTitle string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if !c.IsConfigured() {
		return "", ErrAssistantUnavailable
	}

	reqBody := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: BuildPrompt(question, strings.TrimSpace(contextTitle))}},
		}},
		GenerationConfig: generationConfig{Temperature: c.temperature},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	body, err := c.postWithRetry(ctx, url, payload)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse answer: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no answer candidates returned")
	}

	var answer strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		answer.WriteString(p.Text)
	}

	html, err := c.renderer.Render(answer.String())
	if err != nil {
		return "", fmt.Errorf("failed to render answer: %w", err)
	}

	slog.Debug("assistant answered", "model", c.model, "finish_reason", resp.Candidates[0].FinishReason)
	return html, nil
}

// postWithRetry performs an HTTP POST with exponential backoff on rate limits and server errors
func (c *AssistantClient) postWithRetry(ctx context.Context, url string, payload []byte) ([]byte, error) {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt < assistantMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			slog.Warn("assistant request failed, retrying", "attempt", attempt+1, "status", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return body, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", assistantMaxRetries, lastErr)
}
