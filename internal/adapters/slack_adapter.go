package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ap-pages-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-notifier/pkg/factory"
	"github.com/shouni/go-notifier/pkg/slack"
)

// --- インターフェース定義 ---

// SlackNotifier は運用向けの通知チャネルです。評価者への結果通知とは独立した、
// オペレーター向けのベストエフォート通知であり、失敗しても Task の成否に影響しません。
type SlackNotifier interface {
	Notify(ctx context.Context, event domain.DeployEvent) error
	NotifyError(ctx context.Context, errDetail error, event domain.DeployEvent) error
}

// --- 具象アダプター ---

type SlackAdapter struct {
	httpClient  httpkit.ClientInterface
	webhookURL  string
	slackClient *slack.Client
}

// NewSlackAdapter は Slack クライアントを初期化します。
// webhookURL が空の場合は通知をスキップする無効化状態のアダプターを返します。
func NewSlackAdapter(httpClient httpkit.ClientInterface, webhookURL string) (*SlackAdapter, error) {
	if webhookURL == "" {
		return &SlackAdapter{webhookURL: webhookURL}, nil
	}
	client, err := factory.GetSlackClient(httpClient)
	if err != nil {
		return nil, fmt.Errorf("Slackクライアントの初期化に失敗しました: %w", err)
	}

	return &SlackAdapter{
		httpClient:  httpClient,
		webhookURL:  webhookURL,
		slackClient: client,
	}, nil
}

// Notify デプロイ完了時の Slack 通知送信。リポジトリと公開サイトのリンクを含みます。
func (a *SlackAdapter) Notify(ctx context.Context, event domain.DeployEvent) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、通知をスキップします。", "task", event.TaskID)
		return nil
	}

	icon := "🚀"
	if event.Round > 1 {
		icon = "🔄"
	}

	title := fmt.Sprintf("%s アプリのデプロイが完了しました！", icon)
	content := a.buildSlackContent(event)

	if err := a.slackClient.SendTextWithHeader(ctx, title, content); err != nil {
		return fmt.Errorf("Slackへの投稿に失敗しました: %w", err)
	}

	slog.Info("Slack に完了通知を送信しました。", "repo_url", event.RepoURL)
	return nil
}

// NotifyError エラー詳細と実行メタデータを含む Slack エラー通知の送信。
func (a *SlackAdapter) NotifyError(ctx context.Context, errDetail error, event domain.DeployEvent) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、エラー通知をスキップします。", "error", errDetail)
		return nil
	}

	title := "❌ デプロイ処理中にエラーが発生しました"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*タスク:* `%s` (round %d)\n", event.TaskID, event.Round))
	sb.WriteString(fmt.Sprintf("*実行ID:* `%s`\n", event.ExecutionID))
	sb.WriteString(fmt.Sprintf("*Brief:* %s\n\n", event.Brief))

	// エラー詳細をコードブロックで囲むことで可読性を向上させます。
	sb.WriteString("*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))

	if err := a.slackClient.SendTextWithHeader(ctx, title, sb.String()); err != nil {
		return fmt.Errorf("Slackへのエラー通知に失敗しました: %w", err)
	}

	slog.Info("Slack にエラー通知を送信しました。", "error", errDetail)
	return nil
}

// buildSlackContent デプロイイベントに基づき、Slack メッセージの内容を生成します。
func (a *SlackAdapter) buildSlackContent(event domain.DeployEvent) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**タスク:** `%s` (round %d)\n", event.TaskID, event.Round))
	sb.WriteString(fmt.Sprintf("**実行ID:** `%s`\n", event.ExecutionID))
	sb.WriteString(fmt.Sprintf("**Brief:** %s\n\n", event.Brief))

	if event.PagesURL != "" {
		sb.WriteString(fmt.Sprintf("🌐 **公開サイト:** <%s|ここから確認するのだ！>\n", event.PagesURL))
	}
	sb.WriteString(fmt.Sprintf("📂 **リポジトリ:** <%s|GitHub>\n", event.RepoURL))
	sb.WriteString(fmt.Sprintf("📍 **コミット:** `%s`\n", event.CommitSHA))

	return sb.String()
}
