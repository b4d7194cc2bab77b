package ai

import "context"

// NoMatch is the sentinel index meaning no registered face matched.
const NoMatch = -1

// Provider defines the interface for AI inference backends.
type Provider interface {
	Name() string

	// DescribeFace produces a free-text description of the face in the
	// image, suitable for later comparison.
	DescribeFace(ctx context.Context, imageData []byte) (*FaceDescription, error)

	// MatchFace compares a candidate description against the registered
	// descriptions and returns the index of the best match, or NoMatch.
	// The returned index is the model's suggestion and must be bounds
	// checked by the caller.
	MatchFace(ctx context.Context, candidate string, registered []string) (*MatchResult, error)

	// Usage tracking.
	GetUsage() *Usage
	ResetUsage()
}

// FaceDescription is the structured response of a describe call.
type FaceDescription struct {
	Description string `json:"description"`
}

// MatchResult is the structured response of a match call. Confidence is a
// free-text strength label, not a calibrated probability.
type MatchResult struct {
	MatchIndex int    `json:"match_index"`
	Confidence string `json:"confidence"`
}

// Usage tracks token usage and calculates cost.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalCost    float64 // in USD
}

// RequestPricing holds input/output prices per 1M tokens.
type RequestPricing struct {
	Input  float64
	Output float64
}
