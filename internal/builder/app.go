// Package builder はアプリケーションの依存関係を組み立てます。
package builder

import (
	"context"
	"fmt"
	"net/http"

	"ap-pages-web/internal/adapters"
	"ap-pages-web/internal/attachments"
	"ap-pages-web/internal/config"
	"ap-pages-web/internal/generator"
	"ap-pages-web/internal/gitops"
	"ap-pages-web/internal/hosting"
	"ap-pages-web/internal/notify"
	"ap-pages-web/internal/pipeline"
	"ap-pages-web/internal/publisher"
	"ap-pages-web/internal/retry"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// AppContext はアプリケーションの依存関係を保持します。
type AppContext struct {
	Config   *config.Config
	Pipeline *pipeline.DeployPipeline
}

// BuildAppContext は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(config.DefaultHTTPTimeout)
	restClient := &http.Client{Timeout: cfg.HTTPTimeout}

	// 2. 生成モデルクライアントの初期化 (API キーが無ければフォールバック動作)
	gen, err := generator.NewGeminiGenerator(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}

	// 3. ホスティングと git 操作
	host := hosting.NewClient(cfg, restClient)
	git := gitops.NewCLI()
	pub := publisher.NewPublisher(cfg, git, host)

	// 4. 添付の解決と更新経路
	attach := attachments.NewResolver(restClient)
	upd := publisher.NewUpdater(cfg, git, host, gen, attach)

	// 5. デプロイ確認と評価者通知
	watcher := notify.NewWatcher(restClient, cfg.PollInterval, cfg.DeployWait)
	notifier := notify.NewNotifier(restClient, retry.Exponential(config.DefaultNotifyBase, config.DefaultNotifyAttempts))

	// 6. アダプターの初期化
	slack, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	deployPipeline := pipeline.New(cfg, gen, attach, pub, upd, watcher, notifier, slack)

	return &AppContext{
		Config:   cfg,
		Pipeline: deployPipeline,
	}, nil
}
