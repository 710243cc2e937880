package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:            "8080",
		SharedSecret:    "s3cret",
		GeminiModel:     DefaultModel,
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
		GitHubToken:     "tok",
		GitHubUser:      "octo",
		GitHubAPIURL:    DefaultGitHubAPIURL,
		DefaultBranch:   DefaultBranchName,
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GEMINI_MODEL", "GEMINI_TEMPERATURE", "GEMINI_MAX_OUTPUT_TOKENS",
		"GITHUB_API_URL", "DEFAULT_BRANCH", "PAGES_POLL_INTERVAL", "PAGES_MAX_WAIT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultModel, cfg.GeminiModel)
	assert.Equal(t, DefaultTemperature, cfg.Temperature)
	assert.Equal(t, DefaultMaxOutputTokens, cfg.MaxOutputTokens)
	assert.Equal(t, DefaultGitHubAPIURL, cfg.GitHubAPIURL)
	assert.Equal(t, DefaultBranchName, cfg.DefaultBranch)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, DefaultDeployWait, cfg.DeployWait)
	assert.NotEmpty(t, cfg.WorkDir)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_TEMPERATURE", "0.7")
	t.Setenv("GEMINI_MAX_OUTPUT_TOKENS", "8192")
	t.Setenv("PAGES_POLL_INTERVAL", "10s")
	t.Setenv("DEFAULT_BRANCH", "deploy")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 8192, cfg.MaxOutputTokens)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, "deploy", cfg.DefaultBranch)
}

func TestValidateEssentialConfig_Valid(t *testing.T) {
	assert.NoError(t, ValidateEssentialConfig(validConfig()))
}

func TestValidateEssentialConfig_GeminiKeyIsOptional(t *testing.T) {
	cfg := validConfig()
	cfg.GeminiAPIKey = ""
	assert.NoError(t, ValidateEssentialConfig(cfg))
}

func TestValidateEssentialConfig_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing shared secret", func(c *Config) { c.SharedSecret = "" }},
		{"missing github token", func(c *Config) { c.GitHubToken = "" }},
		{"missing github user", func(c *Config) { c.GitHubUser = "" }},
		{"insecure api url", func(c *Config) { c.GitHubAPIURL = "http://api.example.com" }},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }},
		{"temperature negative", func(c *Config) { c.Temperature = -0.1 }},
		{"zero output tokens", func(c *Config) { c.MaxOutputTokens = 0 }},
		{"empty branch", func(c *Config) { c.DefaultBranch = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			require.Error(t, ValidateEssentialConfig(cfg))
		})
	}
}
