package publisher

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	workflowDir  = ".github/workflows"
	workflowFile = "pages.yml"
	// markerFile は生成内容がバイト単位で同一でもコミットが空にならないことを
	// 保証するためだけに書かれる一時ファイルです。CI の再トリガーに必要です。
	markerFile  = ".redeploy"
	licenseFile = "LICENSE"
	readmeFile  = "README.md"

	licenseText = "MIT License\n\nGenerated automatically.\n"
)

// pagesWorkflow は指定ブランチへの push ごとにツリーをデプロイ成果物へ
// コピーし、静的サイトとして公開する固定の CI ワークフロー定義を返します。
func pagesWorkflow(branch string) string {
	return fmt.Sprintf(`name: Deploy to Pages
on:
  push:
    branches: [ %s ]
permissions:
  contents: read
  pages: write
  id-token: write
jobs:
  build-deploy:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - run: mkdir -p dist && cp -r . dist/ || true
      - uses: actions/upload-pages-artifact@v3
        with:
          path: dist
      - uses: actions/deploy-pages@v4
`, branch)
}

// writeWorkflow はワークフロー定義を無条件に書き込みます。
// ワークフロー導入前に作られたリポジトリの修復も兼ねます。
func writeWorkflow(dir, branch string) error {
	wfDir := filepath.Join(dir, filepath.FromSlash(workflowDir))
	if err := os.MkdirAll(wfDir, 0o755); err != nil {
		return fmt.Errorf("failed to create workflow directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(wfDir, workflowFile), []byte(pagesWorkflow(branch)), 0o644); err != nil {
		return fmt.Errorf("failed to write workflow: %w", err)
	}
	return nil
}

// writeLicenseIfAbsent は LICENSE プレースホルダーを未存在の場合のみ書き込みます。
func writeLicenseIfAbsent(dir string) error {
	return writeIfAbsent(filepath.Join(dir, licenseFile), licenseText)
}

// writeReadmeIfAbsent は README プレースホルダーを未存在の場合のみ書き込みます。
func writeReadmeIfAbsent(dir, taskID, brief string) error {
	content := fmt.Sprintf("# Auto App for %s\n\nBrief: %s\n\nSee LICENSE.\n", taskID, brief)
	return writeIfAbsent(filepath.Join(dir, readmeFile), content)
}

// writeRoundReadme は README をラウンドのメタデータで上書きします (更新時)。
func writeRoundReadme(dir, taskID string, round int, brief string) error {
	content := fmt.Sprintf(`# Updated Auto App – %s

**Round:** %d
**Brief:** %s

Automated update & redeploy.

## License
MIT License
`, taskID, round, brief)
	if err := os.WriteFile(filepath.Join(dir, readmeFile), []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write README: %w", err)
	}
	return nil
}

// writeMarker は新しいタイムスタンプでマーカーファイルを書き込みます。
func writeMarker(dir string) error {
	stamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := os.WriteFile(filepath.Join(dir, markerFile), []byte(stamp), 0o644); err != nil {
		return fmt.Errorf("failed to write marker file: %w", err)
	}
	return nil
}

func writeIfAbsent(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
