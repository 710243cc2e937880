// Package pipeline は Task 1 件分のオーケストレーションを担当します。
// 生成 → 公開/更新は受信リクエストの中で同期的に実行し、デプロイ確認と
// 評価者通知はリクエストの寿命から切り離されたゴルーチンで実行します。
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"ap-pages-web/internal/adapters"
	"ap-pages-web/internal/attachments"
	"ap-pages-web/internal/config"
	"ap-pages-web/internal/domain"
	"ap-pages-web/internal/generator"
)

// Publisher はラウンド 1 の新規公開の抽象です。
type Publisher interface {
	Publish(ctx context.Context, dir string, task domain.Task) (domain.DeployResult, error)
}

// Updater はラウンド 2 以降の更新の抽象です。
type Updater interface {
	Update(ctx context.Context, dir string, task domain.Task) (domain.DeployResult, error)
}

// Notifier は評価者への完了通知の抽象です。
type Notifier interface {
	Notify(ctx context.Context, evaluationURL string, payload domain.NotificationPayload) error
}

// Watcher は公開サイトの疎通確認の抽象です。
type Watcher interface {
	WaitReady(ctx context.Context, url string) bool
}

// DeployPipeline は Task の受理から通知の発行までを統括します。
type DeployPipeline struct {
	cfg      *config.Config
	gen      generator.Generator
	attach   *attachments.Resolver
	pub      Publisher
	upd      Updater
	watcher  Watcher
	notifier Notifier
	slack    adapters.SlackNotifier

	// wg は切り離された通知ゴルーチンを追跡します。グレースフルシャットダウン時に
	// Wait で排出し、送信途中の通知を落とさないようにします。
	wg sync.WaitGroup
}

// New は DeployPipeline を生成します。
func New(
	cfg *config.Config,
	gen generator.Generator,
	attach *attachments.Resolver,
	pub Publisher,
	upd Updater,
	watcher Watcher,
	notifier Notifier,
	slack adapters.SlackNotifier,
) *DeployPipeline {
	return &DeployPipeline{
		cfg:      cfg,
		gen:      gen,
		attach:   attach,
		pub:      pub,
		upd:      upd,
		watcher:  watcher,
		notifier: notifier,
		slack:    slack,
	}
}

// Execute は 1 件の Task を処理します。公開または更新が完了した時点で結果を
// 返し、評価者への通知は別ゴルーチンへ引き継ぎます。エラーはそのまま返り、
// その場合に通知は発行されません。
func (p *DeployPipeline) Execute(ctx context.Context, task domain.Task) (domain.DeployResult, error) {
	exec := newDeployExecution(p, task)
	return exec.run(ctx)
}

// Wait は切り離された通知ゴルーチンの完了を待ちます。シャットダウン専用です。
func (p *DeployPipeline) Wait() {
	p.wg.Wait()
}

// dispatchNotify はデプロイ確認と評価者通知をリクエストの寿命から切り離して実行します。
// 元リクエストのキャンセルは通知をキャンセルしてはならないため、
// context.WithoutCancel で値だけを引き継ぎます。
func (p *DeployPipeline) dispatchNotify(ctx context.Context, evaluationURL, pagesURL string, payload domain.NotificationPayload) {
	detached := context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		// デプロイ完了のベストエフォート確認。結果に関わらず通知へ進みます。
		ready := p.watcher.WaitReady(detached, pagesURL)
		if !ready {
			slog.Warn("Proceeding to notify without readiness confirmation", "pages_url", pagesURL)
		}

		if err := p.notifier.Notify(detached, evaluationURL, payload); err != nil {
			// リトライ枯渇は終端の非致命エラー。ログに残すのみで再送出しません。
			slog.Error("Evaluator notification abandoned", "task", payload.Task, "round", payload.Round, "error", err)
		}
	}()
}
