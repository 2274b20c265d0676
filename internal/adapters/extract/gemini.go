// Package extract turns free-form order text into structured courier data
// using Gemini structured output with a fixed response schema.
package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/viralforge/courierdesk/internal/ports"
)

const systemPrompt = `You are a courier data extraction engine.

Extract:
- invoice
- recipient_name
- recipient_phone
- recipient_address
- cod_amount
- note

Rules:
- Phone must be valid Bangladesh format (e.g., 01XXXXXXXXX or +8801XXXXXXXXX).
- COD must be numeric only (no currency symbols).
- If invoice missing, use empty string.
- Never hallucinate phone numbers - if not found, use empty string.
- Address should be as complete as possible.
- Return JSON only, no additional text.`

var extractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"invoice":           {Type: genai.TypeString, Description: "Invoice number or order ID"},
		"recipient_name":    {Type: genai.TypeString, Description: "Full name of the recipient"},
		"recipient_phone":   {Type: genai.TypeString, Description: "Phone number in Bangladesh format"},
		"recipient_address": {Type: genai.TypeString, Description: "Complete delivery address"},
		"cod_amount":        {Type: genai.TypeNumber, Description: "Cash on delivery amount (numeric only)"},
		"note":              {Type: genai.TypeString, Description: "Additional delivery notes or instructions"},
	},
	Required: []string{"invoice", "recipient_name", "recipient_phone", "recipient_address", "cod_amount", "note"},
}

type Config struct {
	APIKey string
	Model  string
}

type GeminiExtractor struct {
	client *genai.Client
	model  string
}

func NewGeminiExtractor(ctx context.Context, cfg Config) (*GeminiExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

func (e *GeminiExtractor) Extract(ctx context.Context, rawText string) (ports.ExtractedOrder, error) {
	contents := []*genai.Content{
		genai.NewContentFromText("Extract courier data from the following text:\n\n"+rawText, genai.RoleUser),
	}
	result, err := e.client.Models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    extractionSchema,
		Temperature:       genai.Ptr[float32](0.1),
	})
	if err != nil {
		return ports.ExtractedOrder{}, fmt.Errorf("gemini extract: %w", err)
	}

	text := result.Text()
	if text == "" {
		return ports.ExtractedOrder{}, fmt.Errorf("gemini extract: empty response")
	}
	var out ports.ExtractedOrder
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return ports.ExtractedOrder{}, fmt.Errorf("gemini extract: decode response: %w", err)
	}
	return out, nil
}
