package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"ap-pages-web/internal/domain"
	"ap-pages-web/internal/generator"
	"ap-pages-web/internal/publisher"
)

// deployExecution は Task 1 件分の実行状態を保持します。
// 一時作業ディレクトリの寿命管理と、失敗時のオペレーター通知を担います。
type deployExecution struct {
	p           *DeployPipeline
	task        domain.Task
	executionID string
	startTime   time.Time

	workDir string
	result  domain.DeployResult
	err     error
}

func newDeployExecution(p *DeployPipeline, task domain.Task) *deployExecution {
	return &deployExecution{
		p:           p,
		task:        task,
		executionID: uuid.NewString(),
		startTime:   time.Now(),
	}
}

// run は実行本体です。失敗時の Slack エラー通知は defer で一元化します。
func (e *deployExecution) run(ctx context.Context) (domain.DeployResult, error) {
	slog.Info("🚀 デプロイ処理を開始します。",
		"execution_id", e.executionID,
		"task", e.task.TaskID,
		"round", e.task.Round,
	)

	defer e.notifyOnError(ctx)
	defer e.cleanup()

	if err := e.prepareWorkDir(); err != nil {
		e.err = err
		return domain.DeployResult{}, e.err
	}

	if e.task.Round <= 1 {
		e.result, e.err = e.publishNew(ctx)
	} else {
		e.result, e.err = e.p.upd.Update(ctx, e.workDir, e.task)
	}
	if e.err != nil {
		return domain.DeployResult{}, e.err
	}

	e.notifySuccess(ctx)
	e.p.dispatchNotify(ctx, e.task.EvaluationURL, e.result.PagesURL,
		domain.NewNotificationPayload(e.task, e.result))

	slog.Info("✅ デプロイ処理が完了しました。",
		"execution_id", e.executionID,
		"repo_url", e.result.RepoURL,
		"commit", e.result.CommitSHA,
		"duration", time.Since(e.startTime).String(),
	)
	return e.result, nil
}

// publishNew はラウンド 1 の経路です。添付の解決、アプリ生成、作業ツリーへの
// 書き込みまでを行い、新規リポジトリとして公開します。
func (e *deployExecution) publishNew(ctx context.Context) (domain.DeployResult, error) {
	attachmentNames, err := e.p.attach.Resolve(ctx, e.workDir, e.task.Attachments)
	if err != nil {
		return domain.DeployResult{}, err
	}

	files, err := e.p.gen.Generate(ctx, generator.Request{
		Brief:           e.task.Brief,
		AttachmentNames: attachmentNames,
	})
	if err != nil {
		return domain.DeployResult{}, fmt.Errorf("generation failed: %w", err)
	}
	if err := files.WriteTo(e.workDir); err != nil {
		return domain.DeployResult{}, fmt.Errorf("failed to write generated files: %w", err)
	}

	return e.p.pub.Publish(ctx, e.workDir, e.task)
}

func (e *deployExecution) prepareWorkDir() error {
	dir, err := os.MkdirTemp(e.p.cfg.WorkDir, fmt.Sprintf("app-%s-r%d-", publisher.RepoName(e.task.TaskID), e.task.Round))
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	e.workDir = dir
	return nil
}

func (e *deployExecution) cleanup() {
	if e.workDir == "" {
		return
	}
	if err := os.RemoveAll(e.workDir); err != nil {
		slog.Warn("作業ディレクトリの削除に失敗しました。", "dir", e.workDir, "error", err)
	}
}

func (e *deployExecution) event() domain.DeployEvent {
	return domain.DeployEvent{
		ExecutionID: e.executionID,
		TaskID:      e.task.TaskID,
		Round:       e.task.Round,
		Brief:       e.task.Brief,
		RepoURL:     e.result.RepoURL,
		PagesURL:    e.result.PagesURL,
		CommitSHA:   e.result.CommitSHA,
	}
}

func (e *deployExecution) notifySuccess(ctx context.Context) {
	if err := e.p.slack.Notify(ctx, e.event()); err != nil {
		slog.Warn("Slack 完了通知の送信に失敗しました。", "error", err)
	}
}

// notifyOnError は run の終了時に呼ばれ、失敗していた場合のみ
// オペレーター向けのエラー通知を送ります。
func (e *deployExecution) notifyOnError(ctx context.Context) {
	if e.err == nil {
		return
	}
	slog.Error("❌ デプロイ処理が失敗しました。",
		"execution_id", e.executionID,
		"task", e.task.TaskID,
		"round", e.task.Round,
		"error", e.err,
	)
	if err := e.p.slack.NotifyError(ctx, e.err, e.event()); err != nil {
		slog.Warn("Slack エラー通知の送信に失敗しました。", "error", err)
	}
}
