package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shouni/netarmor/securenet"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// --- バリデーション ---

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
// GEMINI_API_KEY は意図的に必須としません。未設定の場合は決定的な
// フォールバックページを生成する契約であり、パイプラインは常に成果物を出せます。
func ValidateEssentialConfig(cfg *Config) error {
	if cfg.SharedSecret == "" {
		return fmt.Errorf("configuration error: STUDENT_SHARED_SECRET is not set")
	}
	if cfg.GitHubToken == "" || cfg.GitHubUser == "" {
		return fmt.Errorf("configuration error: GITHUB_TOKEN and GITHUB_USER are required")
	}
	if !IsSecureURL(cfg.GitHubAPIURL) {
		return fmt.Errorf("security error: GITHUB_API_URL ('%s') must be HTTPS in production", cfg.GitHubAPIURL)
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return fmt.Errorf("configuration error: GEMINI_TEMPERATURE (%g) must be within [0, 2]", cfg.Temperature)
	}
	if cfg.MaxOutputTokens <= 0 {
		return fmt.Errorf("configuration error: GEMINI_MAX_OUTPUT_TOKENS must be positive")
	}
	if cfg.DefaultBranch == "" {
		return fmt.Errorf("configuration error: DEFAULT_BRANCH must not be empty")
	}
	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
