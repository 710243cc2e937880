// Package hosting はホスティングプラットフォーム (GitHub) の REST API を
// 扱う薄いクライアントです。リポジトリ作成と Pages 有効化のみを担当し、
// git の作業ツリー操作は gitops パッケージに委ねます。
package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"ap-pages-web/internal/config"
	"ap-pages-web/internal/retry"
)

const userAgent = "ap-pages-web"

// Client はホスティング API へのアクセスを提供します。
type Client struct {
	httpClient *http.Client
	baseURL    string
	owner      string
	token      string
	pagesRetry retry.Policy
}

// NewClient は設定からホスティングクライアントを構築します。
func NewClient(cfg *config.Config, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.GitHubAPIURL,
		owner:      cfg.GitHubUser,
		token:      cfg.GitHubToken,
		pagesRetry: retry.Fixed(config.DefaultPagesRetryDelay, config.DefaultPagesRetryAttempts),
	}
}

// CreateRepo は設定済みオーナーの下に公開リポジトリの作成を要求します。
// 「既に存在する」(422) は冪等な作成として成功扱いにします。
func (c *Client) CreateRepo(ctx context.Context, name string) error {
	body := map[string]any{
		"name":    name,
		"private": false,
	}

	status, respBody, err := c.post(ctx, c.baseURL+"/user/repos", body)
	if err != nil {
		return err
	}

	switch {
	case status == http.StatusCreated:
		return nil
	case status == http.StatusUnprocessableEntity:
		// name already exists on this account
		slog.Info("Repository already exists; continuing", "repo", name)
		return nil
	default:
		return fmt.Errorf("repository creation returned %d: %s", status, respBody)
	}
}

// EnablePages はワークフロービルドによる静的サイト公開を有効化します。
// リポジトリ作成直後は機能が利用できないことがあるため、固定間隔で
// 規定回数まで再試行します。「既に有効」(409) は成功扱いです。
func (c *Client) EnablePages(ctx context.Context, name string) error {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/pages", c.baseURL, c.owner, name)
	body := map[string]any{"build_type": "workflow"}

	return c.pagesRetry.Do(ctx, func() error {
		status, respBody, err := c.post(ctx, endpoint, body)
		if err != nil {
			return err
		}
		switch {
		case status >= 200 && status < 300:
			return nil
		case status == http.StatusConflict:
			slog.Info("Pages already enabled", "repo", name)
			return nil
		default:
			return fmt.Errorf("pages enablement returned %d: %s", status, respBody)
		}
	})
}

func (c *Client) post(ctx context.Context, endpoint string, body map[string]any) (int, string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("POST %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, "", fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, string(respBody), nil
}

// --- URL ビルダー ---

// RepoURL は公開リポジトリの URL を返します。
func (c *Client) RepoURL(name string) string {
	return fmt.Sprintf("https://github.com/%s/%s", c.owner, name)
}

// PagesURL は公開サイトの URL を返します。
func (c *Client) PagesURL(name string) string {
	return fmt.Sprintf("https://%s.github.io/%s/", c.owner, name)
}

// Remote は資格情報を含まないリモート URL を返します。
func (c *Client) Remote(name string) string {
	return fmt.Sprintf("https://github.com/%s/%s.git", c.owner, name)
}

// AuthenticatedRemote はプッシュ専用の短命な認証付きリモート URL を返します。
// プッシュ後は必ず Remote の形へ書き戻し、ローカル設定に資格情報を残しません。
func (c *Client) AuthenticatedRemote(name string) string {
	return fmt.Sprintf("https://%s:%s@github.com/%s/%s.git", c.owner, c.token, c.owner, name)
}
