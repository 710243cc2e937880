package config

import (
	"os"
	"time"
)

const (
	DefaultModel = "gemini-2.5-flash-lite"
	// DefaultHTTPTimeout 外部 API (ホスティング・評価者・添付取得) への呼び出しタイムアウト
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultTemperature     = 0.2
	DefaultMaxOutputTokens = 4096
	DefaultBranchName      = "main"
	// DefaultPollInterval / DefaultDeployWait は公開サイトの疎通確認に使用します
	DefaultPollInterval = 5 * time.Second
	DefaultDeployWait   = 120 * time.Second
	// DefaultPagesRetryDelay Pages 有効化はリポジトリ作成直後に失敗することがあるため固定間隔で再試行します
	DefaultPagesRetryDelay    = 2 * time.Second
	DefaultPagesRetryAttempts = 5
	// DefaultNotifyAttempts 評価者通知の試行回数。遅延は 1,2,4,8,16 秒の指数スケジュールです
	DefaultNotifyAttempts = 5
	DefaultNotifyBase     = 1 * time.Second
	DefaultShutdownWait   = 15 * time.Second
	DefaultGitHubAPIURL   = "https://api.github.com"
	DefaultCommitterName  = "Bot"
	DefaultCommitterEmail = "bot@local"
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
// プロセス起動時に固定され、以降は変化しません。
type Config struct {
	Port         string
	SharedSecret string

	// Gemini (生成モデル) 設定
	GeminiAPIKey    string // 空の場合はフォールバックページ生成のみで動作します
	GeminiModel     string
	Temperature     float64
	MaxOutputTokens int

	// ホスティング (GitHub + Pages) 設定
	GitHubToken    string
	GitHubUser     string
	GitHubAPIURL   string // テスト時に httptest サーバーへ差し替え可能
	DefaultBranch  string
	CommitterName  string
	CommitterEmail string

	// 運用通知
	SlackWebhookURL string

	// 作業ディレクトリと各種タイムアウト
	WorkDir         string
	HTTPTimeout     time.Duration
	PollInterval    time.Duration
	DeployWait      time.Duration
	ShutdownTimeout time.Duration
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		SharedSecret: getEnv("STUDENT_SHARED_SECRET", ""),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", DefaultModel),
		Temperature:     getEnvFloat("GEMINI_TEMPERATURE", DefaultTemperature),
		MaxOutputTokens: getEnvInt("GEMINI_MAX_OUTPUT_TOKENS", DefaultMaxOutputTokens),

		GitHubToken:    getEnv("GITHUB_TOKEN", ""),
		GitHubUser:     getEnv("GITHUB_USER", ""),
		GitHubAPIURL:   getEnv("GITHUB_API_URL", DefaultGitHubAPIURL),
		DefaultBranch:  getEnv("DEFAULT_BRANCH", DefaultBranchName),
		CommitterName:  getEnv("GIT_COMMITTER_NAME", DefaultCommitterName),
		CommitterEmail: getEnv("GIT_COMMITTER_EMAIL", DefaultCommitterEmail),

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),

		WorkDir:         getEnv("WORK_DIR", os.TempDir()),
		HTTPTimeout:     DefaultHTTPTimeout,
		PollInterval:    getEnvDuration("PAGES_POLL_INTERVAL", DefaultPollInterval),
		DeployWait:      getEnvDuration("PAGES_MAX_WAIT", DefaultDeployWait),
		ShutdownTimeout: DefaultShutdownWait,
	}
}
