// Package attachments は Task に添付された参照を生バイト列に解決し、
// 作業ディレクトリへ書き出します。解決は処理の開始時に一度だけ行われ、
// 以降再取得されることはありません。
package attachments

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ap-pages-web/internal/domain"
)

// maxAttachmentBytes 1 添付あたりの取得上限。巨大レスポンスによるメモリ枯渇を防ぎます。
const maxAttachmentBytes = 32 << 20

// Resolver は添付ファイルの取得と書き出しを担当します。
type Resolver struct {
	client *http.Client
}

// NewResolver はタイムアウト付きの HTTP クライアントを持つ Resolver を生成します。
func NewResolver(client *http.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve はすべての添付を dir 配下へ書き出し、相対ファイル名の一覧を返します。
// いずれかの添付の解決に失敗した場合は domain.AttachmentError を返し、
// 生成処理へ進む前に Task を中断させます。
func (r *Resolver) Resolve(ctx context.Context, dir string, atts []domain.Attachment) ([]string, error) {
	names := make([]string, 0, len(atts))
	for _, att := range atts {
		data, err := r.fetch(ctx, att.URL)
		if err != nil {
			return nil, &domain.AttachmentError{Name: att.Name, Err: err}
		}

		target, err := cleanPath(dir, att.Name)
		if err != nil {
			return nil, &domain.AttachmentError{Name: att.Name, Err: err}
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, &domain.AttachmentError{Name: att.Name, Err: err}
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return nil, &domain.AttachmentError{Name: att.Name, Err: err}
		}
		names = append(names, att.Name)
	}
	return names, nil
}

// fetch は data URI をデコードするか、リモート URL から内容を取得します。
func (r *Resolver) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "data:") {
		return decodeDataURI(rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return data, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	_, payload, found := strings.Cut(uri, ",")
	if !found {
		return nil, fmt.Errorf("malformed data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("base64 decode failed: %w", err)
	}
	return data, nil
}

// cleanPath は添付名を検証し、作業ディレクトリ内に収まる安全なパスを構築します。
func cleanPath(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("attachment name is empty")
	}
	cleaned := filepath.Clean(filepath.Join(dir, filepath.FromSlash(name)))
	if !strings.HasPrefix(cleaned, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("potential traversal: %s", name)
	}
	return cleaned, nil
}
