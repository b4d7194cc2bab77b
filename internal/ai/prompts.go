package ai

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed prompts/face_description.txt
var faceDescriptionPrompt string

//go:embed prompts/face_match.txt
var faceMatchPrompt string

// buildDescribePrompt returns the embedded face description prompt.
func buildDescribePrompt() string {
	return faceDescriptionPrompt
}

// buildMatchPrompt returns the embedded face match system prompt.
func buildMatchPrompt() string {
	return faceMatchPrompt
}

// buildMatchContent builds the user message content for a match call.
// Registered descriptions are tagged with their position so the model's
// returned index resolves against the same ordered list.
// This is shared across all AI providers.
func buildMatchContent(candidate string, registered []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate face description: %q\n", candidate)
	fmt.Fprintf(&b, "\nRegistered profiles (valid indices 0-%d):\n", len(registered)-1)
	for i, desc := range registered {
		fmt.Fprintf(&b, "%d. %s\n", i, desc)
	}
	return b.String()
}
