package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	perr "rakugaki/internal/platform/errors"
)

// Gemini calls the Google generative language REST API
type Gemini struct {
	cfg  Config
	http *http.Client
}

// NewGemini builds a Gemini client from Config
func NewGemini(cfg Config) *Gemini {
	return &Gemini{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// request/response bodies for models/{model}:generateContent

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends the image and prompt to the model and returns the raw text output
func (g *Gemini) Generate(ctx context.Context, img Image, prompt string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MIMEType: img.MIMEType, Data: img.Data}},
				{Text: prompt},
			},
		}},
		GenerationConfig: geminiGenConfig{
			Temperature:     g.cfg.Params.Temperature,
			TopP:            g.cfg.Params.TopP,
			TopK:            g.cfg.Params.TopK,
			MaxOutputTokens: g.cfg.Params.MaxOutputTokens,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeAPI, "encoding generation request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.cfg.BaseURL, g.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeAPI, "creating generation request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", g.cfg.APIKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeAPI, "calling generation endpoint")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeAPI, "reading generation response")
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", perr.RateLimitf("model endpoint rate limited")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var gr geminiResponse
		if json.Unmarshal(raw, &gr) == nil && gr.Error != nil {
			if gr.Error.Status == "RESOURCE_EXHAUSTED" {
				return "", perr.RateLimitf("model endpoint rate limited: %s", gr.Error.Message)
			}
			return "", perr.APIErrf("model endpoint status %d: %s", resp.StatusCode, gr.Error.Message)
		}
		return "", perr.APIErrf("model endpoint status %d", resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeAPI, "decoding generation response")
	}
	if len(gr.Candidates) == 0 {
		return "", perr.APIErrf("model returned no candidates")
	}

	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", perr.APIErrf("model returned empty output")
	}
	return sb.String(), nil
}
