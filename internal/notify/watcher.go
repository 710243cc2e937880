// Package notify はデプロイ完了の確認と評価者への結果通知を担当します。
// どちらもリクエスト処理経路から切り離されたゴルーチン上で実行されます。
package notify

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Watcher は公開サイトの URL を一定間隔でポーリングし、応答が得られるまで待ちます。
// あくまでベストエフォートのゲートであり、正しさの保証ではありません。
type Watcher struct {
	client   *http.Client
	interval time.Duration
	maxWait  time.Duration
}

// NewWatcher は Watcher を生成します。
func NewWatcher(client *http.Client, interval, maxWait time.Duration) *Watcher {
	return &Watcher{client: client, interval: interval, maxWait: maxWait}
}

// WaitReady は url が 2xx を返すまでポーリングします。ポーリング中の
// ネットワークエラーは「まだ準備できていない」として握りつぶします。
// 成功を観測すれば true、上限時間の経過または ctx のキャンセルで false を返します。
// エラーを送出することはありません。
func (w *Watcher) WaitReady(ctx context.Context, url string) bool {
	deadline := time.Now().Add(w.maxWait)

	for {
		if w.probe(ctx, url) {
			slog.Info("Deployed site is responding", "url", url)
			return true
		}
		if time.Now().After(deadline) {
			slog.Warn("Deployment readiness wait elapsed; proceeding anyway", "url", url)
			return false
		}

		timer := time.NewTimer(w.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

func (w *Watcher) probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
