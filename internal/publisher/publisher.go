// Package publisher はリポジトリのライフサイクル管理を担当します。
// 生成済みの作業ディレクトリを新規ホスティングリポジトリとして公開する
// Publisher と、既存リポジトリへ新しい brief を適用して再デプロイする
// Updater から成ります。
package publisher

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"ap-pages-web/internal/config"
	"ap-pages-web/internal/domain"
	"ap-pages-web/internal/gitops"
	"ap-pages-web/internal/hosting"
)

var invalidRepoChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// RepoName はタスク ID からホスティング側で有効なリポジトリ名を導出します。
func RepoName(taskID string) string {
	name := invalidRepoChars.ReplaceAllString(taskID, "-")
	return strings.Trim(name, "-.")
}

// Publisher は作業ディレクトリを継続的デプロイ付きの新規リポジトリへ変換します。
type Publisher struct {
	cfg     *config.Config
	git     gitops.Runner
	hosting *hosting.Client
}

// NewPublisher は Publisher を生成します。
func NewPublisher(cfg *config.Config, git gitops.Runner, host *hosting.Client) *Publisher {
	return &Publisher{cfg: cfg, git: git, hosting: host}
}

// Publish は dir の内容を初期コミットとして新規リポジトリへ公開します。
// 冪等な「既に存在する」ケースを除き、いずれかのステップの失敗は致命的で、
// domain.RepoOpError として Task を中断させます。
func (p *Publisher) Publish(ctx context.Context, dir string, task domain.Task) (domain.DeployResult, error) {
	repo := RepoName(task.TaskID)
	branch := p.cfg.DefaultBranch

	slog.Info("Publishing new repository", "repo", repo, "branch", branch)

	// 1. 指定ブランチでの作業ツリー初期化とコミッター設定
	if err := p.git.Init(ctx, dir, branch); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("init", err)
	}
	if err := p.git.SetIdentity(ctx, dir, p.cfg.CommitterName, p.cfg.CommitterEmail); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("set-identity", err)
	}

	// 2. LICENSE / README プレースホルダー (存在しない場合のみ)
	if err := writeLicenseIfAbsent(dir); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("license", err)
	}
	if err := writeReadmeIfAbsent(dir, task.TaskID, task.Brief); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("readme", err)
	}

	// 3. 最初の push からデフォルトブランチにワークフローが載るよう、コミット前に書き込む
	if err := writeWorkflow(dir, branch); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("workflow", err)
	}

	// 4. 初期コミット
	if err := p.git.AddAll(ctx, dir); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("add", err)
	}
	if err := p.git.Commit(ctx, dir, "init with Pages workflow"); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("commit", err)
	}

	// 5. ホスティング側のリポジトリ作成 (既存は非致命)
	if err := p.hosting.CreateRepo(ctx, repo); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("create-repo", err)
	}

	// 6. 短命な認証付きリモートで push し、資格情報を残さない形へ書き戻す
	if err := p.git.AddRemote(ctx, dir, "origin", p.hosting.AuthenticatedRemote(repo)); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("add-remote", err)
	}
	if err := p.git.Push(ctx, dir, "origin", branch); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("push", err)
	}
	if err := p.git.SetRemoteURL(ctx, dir, "origin", p.hosting.Remote(repo)); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("scrub-remote", err)
	}

	// 7. 静的サイト公開の有効化 (作成直後は失敗しうるため再試行付き)
	if err := p.hosting.EnablePages(ctx, repo); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("enable-pages", err)
	}

	sha, err := p.git.HeadSHA(ctx, dir)
	if err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("head-sha", err)
	}

	result := domain.DeployResult{
		RepoURL:   p.hosting.RepoURL(repo),
		CommitSHA: sha,
		PagesURL:  p.hosting.PagesURL(repo),
	}
	slog.Info("Repository published", "repo_url", result.RepoURL, "commit", sha)
	return result, nil
}
