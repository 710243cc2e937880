package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ap-pages-web/internal/attachments"
	"ap-pages-web/internal/config"
	"ap-pages-web/internal/domain"
	"ap-pages-web/internal/generator"
	"ap-pages-web/internal/gitops"
	"ap-pages-web/internal/hosting"
)

// Updater は既存リポジトリへ新しい brief を適用し、再デプロイします。
type Updater struct {
	cfg     *config.Config
	git     gitops.Runner
	hosting *hosting.Client
	gen     generator.Generator
	attach  *attachments.Resolver
}

// NewUpdater は Updater を生成します。
func NewUpdater(cfg *config.Config, git gitops.Runner, host *hosting.Client, gen generator.Generator, attach *attachments.Resolver) *Updater {
	return &Updater{cfg: cfg, git: git, hosting: host, gen: gen, attach: attach}
}

// Update はリポジトリを複製し、直前のファイル内容をコンテキストとして
// 再生成した結果を同一ブランチへコミット・プッシュします。添付は clone の
// 完了後に解決して作業ツリーへ書き込みます。git 操作の失敗はすべて致命的です
// (未公開のタスク ID に対するラウンド 2 以降の clone 失敗を含む)。
func (u *Updater) Update(ctx context.Context, dir string, task domain.Task) (domain.DeployResult, error) {
	repo := RepoName(task.TaskID)
	branch := u.cfg.DefaultBranch

	slog.Info("Updating existing repository", "repo", repo, "round", task.Round)

	// 1. 複製とブランチ切り替え (ローカルに無ければリモート追跡ブランチを作成)
	if err := u.git.Clone(ctx, u.hosting.Remote(repo), dir); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("clone", err)
	}
	if err := u.git.Checkout(ctx, dir, branch); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("checkout", err)
	}

	// 2. 添付の解決と、既存ファイルをコンテキストに与えた再生成
	attachmentNames, err := u.attach.Resolve(ctx, dir, task.Attachments)
	if err != nil {
		return domain.DeployResult{}, err
	}
	prior, err := readSiteFiles(dir)
	if err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("read-prior", err)
	}
	files, err := u.gen.Generate(ctx, generator.Request{
		Brief:           task.Brief,
		AttachmentNames: attachmentNames,
		PriorFiles:      prior,
	})
	if err != nil {
		return domain.DeployResult{}, fmt.Errorf("generation failed: %w", err)
	}
	if err := files.WriteTo(dir); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("write-files", err)
	}

	// 3. ワークフローの無条件再書き込み (導入前に作られたリポジトリの修復)
	if err := writeWorkflow(dir, branch); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("workflow", err)
	}

	// 4. 生成内容が同一でもコミットが空にならないようマーカーを更新
	if err := writeMarker(dir); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("marker", err)
	}

	// 5. README をラウンドのメタデータで上書き
	if err := writeRoundReadme(dir, task.TaskID, task.Round, task.Brief); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("readme", err)
	}

	// 6. コミッター設定、コミット、認証付き push、リモートの復元
	if err := u.git.SetIdentity(ctx, dir, u.cfg.CommitterName, u.cfg.CommitterEmail); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("set-identity", err)
	}
	if err := u.git.AddAll(ctx, dir); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("add", err)
	}
	if err := u.git.Commit(ctx, dir, fmt.Sprintf("round %d: update app", task.Round)); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("commit", err)
	}
	if err := u.git.SetRemoteURL(ctx, dir, "origin", u.hosting.AuthenticatedRemote(repo)); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("auth-remote", err)
	}
	if err := u.git.Push(ctx, dir, "origin", branch); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("push", err)
	}
	if err := u.git.SetRemoteURL(ctx, dir, "origin", u.hosting.Remote(repo)); err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("scrub-remote", err)
	}

	sha, err := u.git.HeadSHA(ctx, dir)
	if err != nil {
		return domain.DeployResult{}, domain.NewRepoOpError("head-sha", err)
	}

	result := domain.DeployResult{
		RepoURL:   u.hosting.RepoURL(repo),
		CommitSHA: sha,
		PagesURL:  u.hosting.PagesURL(repo),
	}
	slog.Info("Repository updated", "repo_url", result.RepoURL, "commit", sha, "round", task.Round)
	return result, nil
}

// readSiteFiles は clone のルートから静的サイトのテキストファイル
// (*.html / *.css / *.js) を読み取り、モデルへ渡すコンテキストを作ります。
func readSiteFiles(dir string) (*domain.FileSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read clone directory: %w", err)
	}

	files := domain.NewFileSet()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".html"),
			strings.HasSuffix(name, ".css"),
			strings.HasSuffix(name, ".js"):
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}
			files.Add(name, string(data))
		}
	}
	return files, nil
}
