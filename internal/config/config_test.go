package config

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		shouldSet    bool
		want         string
	}{
		{
			name:         "returns environment variable when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			shouldSet:    true,
			want:         "custom",
		},
		{
			name:         "returns default when environment variable not set",
			key:          "TEST_VAR_MISSING",
			defaultValue: "default",
			envValue:     "",
			shouldSet:    false,
			want:         "default",
		},
		{
			name:         "returns default when environment variable is empty string",
			key:          "TEST_VAR_EMPTY",
			defaultValue: "default",
			envValue:     "",
			shouldSet:    true,
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue float64
		envValue     string
		shouldSet    bool
		want         float64
	}{
		{
			name:         "returns environment variable as float when set",
			key:          "TEST_FLOAT_VAR",
			defaultValue: 10,
			envValue:     "2.5",
			shouldSet:    true,
			want:         2.5,
		},
		{
			name:         "returns default when environment variable not set",
			key:          "TEST_FLOAT_VAR_MISSING",
			defaultValue: 10,
			envValue:     "",
			shouldSet:    false,
			want:         10,
		},
		{
			name:         "returns default when environment variable is not a valid float",
			key:          "TEST_FLOAT_VAR_INVALID",
			defaultValue: 10,
			envValue:     "not_a_number",
			shouldSet:    true,
			want:         10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnvAsFloat(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvAsFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("error when API_KEY unset", func(t *testing.T) {
		t.Setenv("API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing API_KEY")
		}
	})

	t.Run("error when OPENAI_API_KEY unset", func(t *testing.T) {
		t.Setenv("API_KEY", "test-api-key")
		t.Setenv("OPENAI_API_KEY", "")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing OPENAI_API_KEY")
		}
	})

	t.Run("defaults applied when optional variables unset", func(t *testing.T) {
		t.Setenv("API_KEY", "test-api-key")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("PORT", "")
		t.Setenv("EMBEDDING_PROVIDER", "")
		t.Setenv("EMBEDDING_RATE_LIMIT", "")
		t.Setenv("QUERY_CACHE_SIZE", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Port != "8080" {
			t.Errorf("Port = %v, want 8080", cfg.Port)
		}
		if cfg.EmbeddingProvider != EmbeddingProviderOpenAI {
			t.Errorf("EmbeddingProvider = %v, want openai", cfg.EmbeddingProvider)
		}
		if cfg.EmbeddingRateLimit != 10 {
			t.Errorf("EmbeddingRateLimit = %v, want 10", cfg.EmbeddingRateLimit)
		}
		if cfg.QueryCacheSize != 1000 {
			t.Errorf("QueryCacheSize = %v, want 1000", cfg.QueryCacheSize)
		}
	})

	t.Run("unsupported embedding provider rejected", func(t *testing.T) {
		t.Setenv("API_KEY", "test-api-key")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("EMBEDDING_PROVIDER", "cohere")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for unsupported provider")
		}
	})

	t.Run("google provider requires GOOGLE_API_KEY", func(t *testing.T) {
		t.Setenv("API_KEY", "test-api-key")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("EMBEDDING_PROVIDER", "google")
		t.Setenv("GOOGLE_API_KEY", "")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing GOOGLE_API_KEY")
		}
	})

	t.Run("google provider accepted with GOOGLE_API_KEY", func(t *testing.T) {
		t.Setenv("API_KEY", "test-api-key")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("EMBEDDING_PROVIDER", "google")
		t.Setenv("GOOGLE_API_KEY", "g-test")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.EmbeddingProvider != EmbeddingProviderGoogle {
			t.Errorf("EmbeddingProvider = %v, want google", cfg.EmbeddingProvider)
		}
	})

	t.Run("validation error when EMBEDDING_RATE_LIMIT <= 0", func(t *testing.T) {
		t.Setenv("API_KEY", "test-api-key")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("EMBEDDING_RATE_LIMIT", "0")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for EMBEDDING_RATE_LIMIT <= 0")
		}
	})
}
