package config

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Provider:         ProviderOllama, // no API key needed in tests
		ModelName:        "llama3.3",
		Temperature:      0.7,
		MaxTokens:        4096,
		OllamaHost:       "http://localhost:11434",
		ServerHost:       "localhost",
		ServerPort:       8080,
		RateLimitRPS:     10,
		RateLimitBurst:   20,
		PostgresHost:     "localhost",
		PostgresPort:     5432,
		PostgresUser:     "scribe",
		PostgresPassword: "test_password_123",
		PostgresDBName:   "scribe",
		PostgresSSLMode:  "disable",
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty model name", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, ErrInvalidTemperature},
		{"temperature negative", func(c *Config) { c.Temperature = -0.1 }, ErrInvalidTemperature},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }, ErrInvalidMaxTokens},
		{"server port out of range", func(c *Config) { c.ServerPort = 70000 }, ErrInvalidServerPort},
		{"empty postgres host", func(c *Config) { c.PostgresHost = "" }, ErrInvalidPostgresHost},
		{"postgres port zero", func(c *Config) { c.PostgresPort = 0 }, ErrInvalidPostgresPort},
		{"empty db name", func(c *Config) { c.PostgresDBName = "" }, ErrInvalidPostgresDBName},
		{"empty password", func(c *Config) { c.PostgresPassword = "" }, ErrInvalidPostgresPassword},
		{"short password", func(c *Config) { c.PostgresPassword = "short" }, ErrInvalidPostgresPassword},
		{"deprecated ssl mode", func(c *Config) { c.PostgresSSLMode = "prefer" }, ErrInvalidPostgresSSLMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	var c *Config
	if err := c.Validate(); !errors.Is(err, ErrConfigNil) {
		t.Errorf("got %v, want ErrConfigNil", err)
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", maskedValue},
		{"eight_ch", maskedValue},
		{"my_long_secret_key_123", "my<" + maskedValue + ">23"},
	}
	for _, tt := range tests {
		if got := maskSecret(tt.in); got != tt.want {
			t.Errorf("maskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarshalJSONMasksPassword(t *testing.T) {
	cfg := validConfig()
	cfg.PostgresPassword = "super_secret_value_42"

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "super_secret_value_42") {
		t.Error("password leaked into JSON output")
	}
	if !strings.Contains(string(data), maskedValue) {
		t.Error("masked placeholder missing from JSON output")
	}
}

func TestStringMasksPassword(t *testing.T) {
	cfg := validConfig()
	cfg.PostgresPassword = "super_secret_value_42"
	if strings.Contains(cfg.String(), "super_secret_value_42") {
		t.Error("password leaked into String output")
	}
}

func TestFullModelName(t *testing.T) {
	tests := []struct {
		provider string
		model    string
		want     string
	}{
		{ProviderGemini, "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{ProviderOllama, "llama3.3", "ollama/llama3.3"},
		{ProviderOpenAI, "gpt-4o", "openai/gpt-4o"},
		{ProviderGemini, "googleai/gemini-2.5-pro", "googleai/gemini-2.5-pro"},
	}
	for _, tt := range tests {
		c := &Config{Provider: tt.provider, ModelName: tt.model}
		if got := c.FullModelName(); got != tt.want {
			t.Errorf("FullModelName(%s, %s) = %q, want %q", tt.provider, tt.model, got, tt.want)
		}
	}
}

func TestServerAddr(t *testing.T) {
	c := &Config{ServerHost: "0.0.0.0", ServerPort: 9000}
	if got := c.ServerAddr(); got != "0.0.0.0:9000" {
		t.Errorf("got %q", got)
	}
}
