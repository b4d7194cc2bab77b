package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Helper functions for creating test images

func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(img image.Image) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// --- ResizeImage tests ---

func TestResizeImage_NoResizeNeeded(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	data := encodeJPEG(img)

	resized, err := ResizeImage(data, 200)
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}

	if len(resized) == 0 {
		t.Error("expected non-empty result")
	}

	// Verify it's a valid JPEG
	_, format, err := image.Decode(bytes.NewReader(resized))
	if err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}

	if format != "jpeg" {
		t.Errorf("expected jpeg format, got %s", format)
	}
}

func TestResizeImage_NeedsResize_Landscape(t *testing.T) {
	img := createTestImage(2000, 1000, color.White)
	data := encodeJPEG(img)

	resized, err := ResizeImage(data, 500)
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}

	decodedImg, _, err := image.Decode(bytes.NewReader(resized))
	if err != nil {
		t.Fatalf("failed to decode resized image: %v", err)
	}

	bounds := decodedImg.Bounds()

	// Width should be maxSize
	if bounds.Dx() != 500 {
		t.Errorf("expected width 500, got %d", bounds.Dx())
	}

	// Height should maintain aspect ratio (2000/1000 = 2:1)
	if bounds.Dy() != 250 {
		t.Errorf("expected height 250, got %d", bounds.Dy())
	}
}

func TestResizeImage_NeedsResize_Portrait(t *testing.T) {
	img := createTestImage(1000, 2000, color.White)
	data := encodeJPEG(img)

	resized, err := ResizeImage(data, 500)
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}

	decodedImg, _, err := image.Decode(bytes.NewReader(resized))
	if err != nil {
		t.Fatalf("failed to decode resized image: %v", err)
	}

	bounds := decodedImg.Bounds()

	// Height should be maxSize
	if bounds.Dy() != 500 {
		t.Errorf("expected height 500, got %d", bounds.Dy())
	}

	// Width should maintain aspect ratio
	if bounds.Dx() != 250 {
		t.Errorf("expected width 250, got %d", bounds.Dx())
	}
}

func TestResizeImage_InvalidData(t *testing.T) {
	invalidData := []byte("not an image")

	_, err := ResizeImage(invalidData, 500)
	if err == nil {
		t.Error("expected error for invalid image data")
	}
}

func TestResizeImage_EmptyData(t *testing.T) {
	_, err := ResizeImage([]byte{}, 500)
	if err == nil {
		t.Error("expected error for empty data")
	}
}

func TestResizeImage_PNGInput(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	data := encodePNG(img)

	resized, err := ResizeImage(data, 200)
	if err != nil {
		t.Fatalf("ResizeImage failed for PNG: %v", err)
	}

	// Should convert to JPEG
	_, format, err := image.Decode(bytes.NewReader(resized))
	if err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}

	if format != "jpeg" {
		t.Errorf("expected jpeg output format, got %s", format)
	}
}

// --- Prompt building tests ---

func TestBuildMatchContent_IndexedList(t *testing.T) {
	content := buildMatchContent("round face", []string{"oval face", "square jaw", "narrow chin"})

	if !strings.Contains(content, `"round face"`) {
		t.Error("expected candidate description in content")
	}

	for _, want := range []string{"0. oval face", "1. square jaw", "2. narrow chin"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in content:\n%s", want, content)
		}
	}

	// Index range hint must match the list length.
	if !strings.Contains(content, "0-2") {
		t.Errorf("expected valid index range 0-2 in content:\n%s", content)
	}
}

func TestBuildMatchContent_SingleProfile(t *testing.T) {
	content := buildMatchContent("x", []string{"only one"})

	if !strings.Contains(content, "0. only one") {
		t.Errorf("expected indexed entry in content:\n%s", content)
	}

	if !strings.Contains(content, "0-0") {
		t.Errorf("expected index range 0-0 in content:\n%s", content)
	}
}

func TestBuildDescribePrompt_MentionsJSONShape(t *testing.T) {
	prompt := buildDescribePrompt()

	if !strings.Contains(prompt, "description") {
		t.Error("expected describe prompt to name the description field")
	}
}

func TestBuildMatchPrompt_MentionsSchema(t *testing.T) {
	prompt := buildMatchPrompt()

	for _, want := range []string{"match_index", "confidence", "-1"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected %q in match prompt", want)
		}
	}
}

// --- extractJSON tests ---

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain JSON", `{"match_index": 1}`, `{"match_index": 1}`},
		{"leading text", `Here you go: {"match_index": 1}`, `{"match_index": 1}`},
		{"trailing text", `{"match_index": 1} hope that helps`, `{"match_index": 1}`},
		{"nested braces", `{"a": {"b": 1}} extra`, `{"a": {"b": 1}}`},
		{"no JSON", `no braces here`, `no braces here`},
		{"unterminated", `{"a": 1`, `{"a": 1`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.input); got != tc.expected {
				t.Errorf("extractJSON(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

// --- MatchResult parsing tests ---

func TestMatchResult_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		index      int
		confidence string
	}{
		{"match", `{"match_index": 1, "confidence": "high"}`, 1, "high"},
		{"no match", `{"match_index": -1, "confidence": "low"}`, -1, "low"},
		{"missing confidence", `{"match_index": 0}`, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var m MatchResult
			if err := json.Unmarshal([]byte(tc.payload), &m); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if m.MatchIndex != tc.index {
				t.Errorf("expected index %d, got %d", tc.index, m.MatchIndex)
			}
			if m.Confidence != tc.confidence {
				t.Errorf("expected confidence %q, got %q", tc.confidence, m.Confidence)
			}
		})
	}
}

// --- Ollama provider tests ---

func setupMockOllamaServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "llava",
			"message": map[string]string{
				"role":    "assistant",
				"content": reply,
			},
			"done":              true,
			"prompt_eval_count": 120,
			"eval_count":        40,
		})
	})
	return httptest.NewServer(mux)
}

func TestOllamaProvider_DescribeFace(t *testing.T) {
	server := setupMockOllamaServer(t, `{"description": "round face, high cheekbones"}`)
	defer server.Close()

	p := NewOllamaProvider(server.URL, "llava")

	img := encodeJPEG(createTestImage(64, 64, color.White))
	desc, err := p.DescribeFace(context.Background(), img)
	if err != nil {
		t.Fatalf("DescribeFace failed: %v", err)
	}

	if desc.Description != "round face, high cheekbones" {
		t.Errorf("unexpected description: %s", desc.Description)
	}

	usage := p.GetUsage()
	if usage.InputTokens != 120 || usage.OutputTokens != 40 {
		t.Errorf("unexpected usage: %+v", usage)
	}
}

func TestOllamaProvider_MatchFace(t *testing.T) {
	server := setupMockOllamaServer(t, `{"match_index": 1, "confidence": "high"}`)
	defer server.Close()

	p := NewOllamaProvider(server.URL, "llava")

	match, err := p.MatchFace(context.Background(), "round face", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("MatchFace failed: %v", err)
	}

	if match.MatchIndex != 1 {
		t.Errorf("expected match index 1, got %d", match.MatchIndex)
	}

	if match.Confidence != "high" {
		t.Errorf("expected confidence 'high', got '%s'", match.Confidence)
	}
}

func TestOllamaProvider_MatchFace_EmptyRegistered(t *testing.T) {
	p := NewOllamaProvider("http://localhost:1", "llava")

	_, err := p.MatchFace(context.Background(), "x", nil)
	if err == nil {
		t.Error("expected error for empty registered list")
	}
}

func TestOllamaProvider_Defaults(t *testing.T) {
	p := NewOllamaProvider("", "")

	if p.baseURL != defaultOllamaURL {
		t.Errorf("expected default URL, got %s", p.baseURL)
	}

	if p.Name() != defaultOllamaModel {
		t.Errorf("expected default model, got %s", p.Name())
	}
}

func TestUsage_ZeroValue(t *testing.T) {
	usage := Usage{}

	if usage.InputTokens != 0 {
		t.Error("expected InputTokens 0")
	}

	if usage.TotalCost != 0 {
		t.Error("expected TotalCost 0")
	}
}
