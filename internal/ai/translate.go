// Package ai wraps the optional OpenAI-backed payload translation helper.
// The helper is a collaborator, not a pipeline stage: when it is not
// configured or the upstream call fails for any reason, callers get a
// well-defined "unavailable" response instead of an error.
package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"taxinator/internal/config"
	"taxinator/internal/logger"
)

// TranslateRequest asks the model to translate free-form source material
// into a vendor-ready payload.
type TranslateRequest struct {
	InputText     string `json:"input_text" binding:"required"`
	VendorTarget  string `json:"vendor_target,omitempty"`
	Attachments   string `json:"attachments,omitempty"`
	IncludeChecks bool   `json:"include_checks"`
}

// TranslateResponse is the helper's result envelope. Status is "ok" or
// "unavailable"; an unavailable response carries the reason in Checks.
type TranslateResponse struct {
	Status       string   `json:"status"`
	VendorTarget string   `json:"vendor_target,omitempty"`
	Plan         string   `json:"plan"`
	Translation  string   `json:"translation"`
	Checks       []string `json:"checks"`
	Notes        []string `json:"notes"`
}

// chat-completions wire types, trimmed to what the helper reads and writes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a strict tax-engine translator. Return only the translated payload, no narration."

var (
	fencedBlock = regexp.MustCompile("(?is)```(?:json)?\\s*([\\s\\S]*?)```")
	jsonLike    = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)
)

// Client calls the AI collaborator.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
	log    *zap.SugaredLogger
}

// NewClient builds a client from configuration. A missing API key is fine;
// every call will simply return the unavailable fallback.
func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.OpenAIBaseURL).
		SetTimeout(cfg.AITimeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		apiKey: cfg.OpenAIAPIKey,
		model:  cfg.OpenAIModel,
		log:    logger.Named("ai"),
	}
}

// Translate plans and translates a payload, falling back gracefully when
// the collaborator is unavailable. It never returns an error.
func (c *Client) Translate(ctx context.Context, req TranslateRequest) TranslateResponse {
	if c.apiKey == "" {
		return fallback("AI translation not configured.")
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		MaxTokens: 800,
	}

	var parsed chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(body).
		SetResult(&parsed).
		Post("/chat/completions")
	if err != nil {
		c.log.Warnw("ai call failed", "error", err)
		return fallback(fmt.Sprintf("AI call failed: %v", err))
	}
	if resp.IsError() {
		c.log.Warnw("ai call rejected", "status", resp.StatusCode())
		return fallback(fmt.Sprintf("AI call failed with status %d", resp.StatusCode()))
	}
	if len(parsed.Choices) == 0 {
		return fallback("AI returned no choices.")
	}

	result := TranslateResponse{
		Status:       "ok",
		VendorTarget: req.VendorTarget,
		Translation:  extractTranslation(parsed.Choices[0].Message.Content),
		Checks:       []string{},
		Notes:        []string{"AI-generated; review before sending downstream."},
	}
	if req.IncludeChecks {
		result.Checks = []string{
			"Validate required fields and ISO dates.",
			"Confirm numeric fields are decimal strings.",
			"Ensure account/customer IDs align across datasets.",
		}
	}
	return result
}

// buildPrompt assembles the user prompt from the request.
func buildPrompt(req TranslateRequest) string {
	parts := []string{
		"You are an expert tax payload translator and validator.",
		"Produce ONLY the translated vendor-ready payload. Do not include a plan, intro, or prose.",
	}
	if req.VendorTarget != "" {
		parts = append(parts, fmt.Sprintf("Target vendor format: %s.", req.VendorTarget))
	}
	parts = append(parts, "Source material:", strings.TrimSpace(req.InputText))
	if req.Attachments != "" {
		parts = append(parts, fmt.Sprintf("Additional context: %s", req.Attachments))
	}
	return strings.Join(parts, "\n")
}

// extractTranslation pulls the payload out of the model's reply: a fenced
// code block first, then anything JSON-looking, then the raw text.
func extractTranslation(text string) string {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := jsonLike.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// fallback is the well-defined unavailable result.
func fallback(reason string) TranslateResponse {
	return TranslateResponse{
		Status:      "unavailable",
		Translation: "",
		Checks:      []string{reason},
		Notes:       []string{"Provide OPENAI_API_KEY or OPEN_AI_KEY to enable AI translation."},
	}
}
