// Package genai abstracts the generative model used to produce critiques
package genai

import (
	"context"
	"strings"
	"time"

	"rakugaki/internal/platform/config"
)

// Image is an inline image payload for a generation request
type Image struct {
	// MIMEType is e.g. image/png
	MIMEType string
	// Data is the base64-encoded image bytes, without a data URI prefix
	Data string
}

// Params tune a single generation call
type Params struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// DefaultParams returns the tuning used for critique generation
func DefaultParams() Params {
	return Params{
		Temperature:     0.9,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 2048,
	}
}

// Client generates text from an image plus prompt
type Client interface {
	// Generate returns the raw model output text for the given image and prompt
	Generate(ctx context.Context, img Image, prompt string) (string, error)
}

// Config holds model client settings
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Params  Params
}

// FromConf builds Config from env (RAKUGAKI_GENAI_*)
func FromConf(cfg config.Conf) Config {
	return Config{
		APIKey:  cfg.MustString("API_KEY"),
		Model:   cfg.MayString("MODEL", "gemini-2.0-flash"),
		BaseURL: strings.TrimRight(cfg.MayString("BASE_URL", "https://generativelanguage.googleapis.com"), "/"),
		Timeout: cfg.MayDuration("TIMEOUT", 60*time.Second),
		Params:  DefaultParams(),
	}
}
