package gitops

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLI は外部の git コマンドを利用する Runner の標準実装です。
type CLI struct{}

// NewCLI は CLI ランナーを生成します。
func NewCLI() *CLI {
	return &CLI{}
}

// run は git サブコマンドを実行し、失敗時は出力をエラーメッセージへ畳み込みます。
func (c *CLI) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(output)))
	}
	return strings.TrimSpace(string(output)), nil
}

func (c *CLI) Init(ctx context.Context, dir, branch string) error {
	_, err := c.run(ctx, dir, "init", "-b", branch)
	return err
}

func (c *CLI) SetIdentity(ctx context.Context, dir, name, email string) error {
	if _, err := c.run(ctx, dir, "config", "user.name", name); err != nil {
		return err
	}
	_, err := c.run(ctx, dir, "config", "user.email", email)
	return err
}

func (c *CLI) AddAll(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "add", "-A")
	return err
}

func (c *CLI) Commit(ctx context.Context, dir, message string) error {
	_, err := c.run(ctx, dir, "commit", "-m", message)
	return err
}

func (c *CLI) Clone(ctx context.Context, url, dir string) error {
	_, err := c.run(ctx, "", "clone", url, dir)
	return err
}

// Checkout はまず通常の checkout を試み、ローカルブランチが無い場合は
// origin のリモートブランチから追跡ブランチを作成します。
func (c *CLI) Checkout(ctx context.Context, dir, branch string) error {
	if _, err := c.run(ctx, dir, "checkout", branch); err == nil {
		return nil
	}
	_, err := c.run(ctx, dir, "checkout", "-b", branch, "origin/"+branch)
	return err
}

func (c *CLI) AddRemote(ctx context.Context, dir, name, url string) error {
	_, err := c.run(ctx, dir, "remote", "add", name, url)
	return err
}

func (c *CLI) SetRemoteURL(ctx context.Context, dir, name, url string) error {
	_, err := c.run(ctx, dir, "remote", "set-url", name, url)
	return err
}

func (c *CLI) Push(ctx context.Context, dir, remote, branch string) error {
	_, err := c.run(ctx, dir, "push", "-u", remote, branch)
	return err
}

func (c *CLI) HeadSHA(ctx context.Context, dir string) (string, error) {
	return c.run(ctx, dir, "rev-parse", "HEAD")
}
