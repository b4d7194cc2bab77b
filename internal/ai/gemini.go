package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

type GeminiProvider struct {
	client      *genai.Client
	usage       Usage
	inputPrice  float64 // per 1M tokens
	outputPrice float64 // per 1M tokens
}

func NewGeminiProvider(ctx context.Context, apiKey string, pricing RequestPricing) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:      client,
		inputPrice:  pricing.Input,
		outputPrice: pricing.Output,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return geminiModel
}

func (p *GeminiProvider) GetUsage() *Usage {
	return &p.usage
}

func (p *GeminiProvider) ResetUsage() {
	p.usage = Usage{}
}

func (p *GeminiProvider) trackUsage(inputTokens, outputTokens int32) {
	p.usage.InputTokens += int(inputTokens)
	p.usage.OutputTokens += int(outputTokens)
	p.usage.TotalCost += float64(inputTokens) / 1_000_000 * p.inputPrice
	p.usage.TotalCost += float64(outputTokens) / 1_000_000 * p.outputPrice
}

// generateJSON sends contents to Gemini expecting a JSON response and
// unmarshals it into out. One attempt only; a parse failure ends the run.
func (p *GeminiProvider) generateJSON(ctx context.Context, contents []*genai.Content, out any) error {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	result, err := p.client.Models.GenerateContent(ctx, geminiModel, contents, config)
	if err != nil {
		return fmt.Errorf("gemini API error: %w", err)
	}

	if result.UsageMetadata != nil {
		p.trackUsage(result.UsageMetadata.PromptTokenCount, result.UsageMetadata.CandidatesTokenCount)
	}

	content := result.Text()
	if content == "" {
		return errors.New("no response from Gemini")
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w (response: %s)", err, content)
	}
	return nil
}

func (p *GeminiProvider) DescribeFace(ctx context.Context, imageData []byte) (*FaceDescription, error) {
	// Resize image to max 800px to save costs
	resizedData, err := ResizeImage(imageData, 800)
	if err != nil {
		return nil, fmt.Errorf("failed to resize image: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildDescribePrompt()},
				{InlineData: &genai.Blob{Data: resizedData, MIMEType: "image/jpeg"}},
			},
		},
	}

	var desc FaceDescription
	if err := p.generateJSON(ctx, contents, &desc); err != nil {
		return nil, err
	}
	if desc.Description == "" {
		return nil, errors.New("empty face description from Gemini")
	}
	return &desc, nil
}

func (p *GeminiProvider) MatchFace(ctx context.Context, candidate string, registered []string) (*MatchResult, error) {
	if len(registered) == 0 {
		return nil, errors.New("no registered descriptions to match against")
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildMatchPrompt() + "\n\n" + buildMatchContent(candidate, registered)},
			},
		},
	}

	var match MatchResult
	if err := p.generateJSON(ctx, contents, &match); err != nil {
		return nil, err
	}
	return &match, nil
}
