// SPDX-License-Identifier: MIT

// Package generator turns a free-text theme description into a validated
// style document using the Gemini generateContent API.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/thatcatcamp/themecycle/internal/logger"
	"github.com/thatcatcamp/themecycle/internal/remote"
	"github.com/thatcatcamp/themecycle/internal/styles"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-2.0-flash"
	DefaultTimeout  = 60 * time.Second

	serviceName = "Gemini"
)

// ErrParse is returned when the model output is not a JSON style document.
var ErrParse = errors.New("generated text is not a valid config")

// TransportError is returned for network failures and non-2xx responses.
type TransportError = remote.TransportError

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	Endpoint   string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client calls the generation API. It is safe for concurrent use.
type Client struct {
	endpoint string
	model    string
	http     *http.Client
	log      *logger.Logger
	namer    Namer
}

// Result is a freshly generated document and the key it was minted under.
type Result struct {
	Key      string
	Document *styles.Document
}

func New(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		endpoint: strings.TrimRight(opts.Endpoint, "/"),
		model:    opts.Model,
		http:     hc,
		log:      opts.Logger.With(map[string]any{"component": "generator"}),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate asks the model for a theme matching description. The returned
// document has passed Validate and carries a name. Nothing is minted when
// any step fails.
func (c *Client) Generate(ctx context.Context, apiKey, description string) (*Result, error) {
	text, err := c.complete(ctx, apiKey, BuildPrompt(description))
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	doc, err := styles.Parse([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	_, key, fallback := c.namer.Next()
	if doc.Name == "" {
		doc.Name = fallback
	}
	c.log.Info("theme generated", map[string]any{"key": key, "name": doc.Name})
	return &Result{Key: key, Document: doc}, nil
}

func (c *Client) complete(ctx context.Context, apiKey, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-goog-api-key", apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", remote.NetworkError(serviceName, err)
	}
	defer resp.Body.Close()

	if !remote.IsSuccess(resp.StatusCode) {
		terr := remote.StatusError(serviceName, resp, nestedErrorMessage)
		c.log.Warn("generation request rejected", map[string]any{"status": resp.StatusCode})
		return "", terr
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrParse, err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: response carried no text", ErrParse)
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// nestedErrorMessage reads {"error":{"message":...}}.
func nestedErrorMessage(body map[string]any) string {
	inner, ok := body["error"].(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := inner["message"].(string)
	return msg
}

// BuildPrompt wraps a theme description with the document schema and the
// formatting rules the model must follow.
func BuildPrompt(description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a web design expert. Generate a JSON configuration for a webpage theme based on this description: %q\n\n", description)
	b.WriteString("IMPORTANT: Return ONLY valid JSON, no markdown, no code blocks, no explanations. The JSON must strictly follow this schema:\n\n")
	b.WriteString(styles.SchemaHint())
	b.WriteString("\n\nRequirements:\n")
	for _, rule := range promptRules {
		b.WriteString("- ")
		b.WriteString(rule)
		b.WriteByte('\n')
	}
	b.WriteString("\nGenerate the JSON now:")
	return b.String()
}

var promptRules = []string{
	"All color values must be valid hex codes (e.g., #ffffff, #333333)",
	`The "colors" array in button should have at least 4-6 different colors`,
	"Use camelCase for all CSS properties (e.g., fontSize, marginBottom, not font-size, margin-bottom)",
	`For gradients, use the "background" property with CSS gradient syntax`,
	`For solid colors, use "backgroundColor" property`,
	"Make sure all required properties are included",
	"The theme should be visually appealing and match the description",
}
