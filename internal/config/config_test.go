package config

import (
	"os"
	"testing"
)

func TestGetModelPricing_KnownModel(t *testing.T) {
	cfg := Load() // Load actual config with embedded prices

	pricing := cfg.GetModelPricing("gpt-4.1-mini")

	if pricing.Input == 0 && pricing.Output == 0 {
		t.Error("expected non-zero pricing for gpt-4.1-mini")
	}

	// Verify expected values from prices.yaml
	if pricing.Input != 0.40 {
		t.Errorf("expected input price 0.40, got %f", pricing.Input)
	}

	if pricing.Output != 1.60 {
		t.Errorf("expected output price 1.60, got %f", pricing.Output)
	}
}

func TestGetModelPricing_UnknownModel(t *testing.T) {
	cfg := Load()

	pricing := cfg.GetModelPricing("no-such-model")

	if pricing.Input != 0 || pricing.Output != 0 {
		t.Errorf("expected zero pricing for unknown model, got %+v", pricing)
	}
}

func TestEnvInt_Default(t *testing.T) {
	os.Unsetenv("FACE_LOUNGE_TEST_INT")

	if got := envInt("FACE_LOUNGE_TEST_INT", 42); got != 42 {
		t.Errorf("expected default 42, got %d", got)
	}
}

func TestEnvInt_Valid(t *testing.T) {
	t.Setenv("FACE_LOUNGE_TEST_INT", "7")

	if got := envInt("FACE_LOUNGE_TEST_INT", 42); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestEnvInt_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "abc"},
		{"negative", "-3"},
		{"zero", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("FACE_LOUNGE_TEST_INT", tc.value)

			if got := envInt("FACE_LOUNGE_TEST_INT", 42); got != 42 {
				t.Errorf("expected fallback 42 for %q, got %d", tc.value, got)
			}
		})
	}
}

func TestLoad_ChatDefaults(t *testing.T) {
	os.Unsetenv("CHAT_POLL_INTERVAL")
	os.Unsetenv("CHAT_HISTORY_LIMIT")

	cfg := Load()

	if cfg.Chat.PollInterval != 2 {
		t.Errorf("expected default poll interval 2, got %d", cfg.Chat.PollInterval)
	}

	if cfg.Chat.HistoryLimit != 100 {
		t.Errorf("expected default history limit 100, got %d", cfg.Chat.HistoryLimit)
	}
}

func TestLoad_UploadFromEnv(t *testing.T) {
	t.Setenv("UPLOAD_URL", "https://files.example.com")
	t.Setenv("UPLOAD_TOKEN", "secret")

	cfg := Load()

	if cfg.Upload.URL != "https://files.example.com" {
		t.Errorf("unexpected upload URL: %s", cfg.Upload.URL)
	}

	if cfg.Upload.Token != "secret" {
		t.Errorf("unexpected upload token: %s", cfg.Upload.Token)
	}
}
