package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"ap-pages-web/internal/domain"
	"ap-pages-web/internal/retry"
)

// Notifier は完了ペイロードを評価者エンドポイントへ配送します。
// 配送は指数的に増加する固定スケジュール (既定で 1,2,4,8,16 秒・5 回) で
// 再試行され、スケジュールを使い切っても致命的エラーにはなりません。
type Notifier struct {
	client *http.Client
	policy retry.Policy
}

// NewNotifier は Notifier を生成します。
func NewNotifier(client *http.Client, policy retry.Policy) *Notifier {
	return &Notifier{client: client, policy: policy}
}

// Notify は payload を evaluationURL へ POST します。2xx 応答で配送完了です。
// それ以外の応答とトランスポートエラーはスケジュールに従って再試行されます。
// スケジュールを使い切った場合は最後のエラーを返します。呼び出し側 (切り離された
// 通知ゴルーチン) はこれをログに記録するだけで、再送出しません。
func (n *Notifier) Notify(ctx context.Context, evaluationURL string, payload domain.NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	attempt := 0
	err = n.policy.Do(ctx, func() error {
		attempt++
		if err := n.post(ctx, evaluationURL, body); err != nil {
			slog.Warn("Evaluator notification attempt failed", "attempt", attempt, "error", err)
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("evaluator notification failed after %d attempts: %w", attempt, err)
	}

	slog.Info("Evaluator notified successfully", "url", evaluationURL, "attempts", attempt)
	return nil
}

func (n *Notifier) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("evaluator returned %d", resp.StatusCode)
	}
	return nil
}
