package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements DecisionProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Selection must be deterministic given the same candidate set.
	model.SetTemperature(0)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ChooseCandidate asks the model to pick one candidate under the strategy.
func (p *GeminiProvider) ChooseCandidate(ctx context.Context, req DecisionRequest) (*Decision, error) {
	batteryJSON, err := json.Marshal(req.Battery)
	if err != nil {
		return nil, fmt.Errorf("failed to encode battery summary: %w", err)
	}
	candidatesJSON, err := json.Marshal(req.Candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode candidates: %w", err)
	}

	fullPrompt := fmt.Sprintf("%s\n\nStrategy: %s\nBattery info: %s\nCandidates: %s\nReturn JSON only.",
		decisionSystemPrompt, req.Strategy, batteryJSON, candidatesJSON)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	// Extract text from the response parts.
	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Clean up potential markdown formatting (though json mode should handle this, safety first).
	cleanJSON := cleanJSONString(responseText.String())

	var decision Decision
	if err := json.Unmarshal([]byte(cleanJSON), &decision); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}

	return &decision, nil
}

const decisionSystemPrompt = `You are a strict EV charging decision agent.
Choose EXACTLY ONE candidate.
Mandatory constraints:
1. must meet ready-by
2. must achieve target SOC
Decision rules:
- strategy='cost': choose lowest total_cost_eur
- strategy='speed': choose shortest duration_h
- strategy='balanced': choose best compromise of cost + time
Return ONLY JSON: {"station_id": "...", "connector_id": "..."}`

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
