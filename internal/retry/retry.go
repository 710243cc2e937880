// Package retry は固定遅延スケジュールに基づくリトライポリシーを提供します。
// 評価者通知 (指数スケジュール) と Pages 有効化 (固定スケジュール) の
// 両方の呼び出し側で共有されます。
package retry

import (
	"context"
	"time"
)

// Policy は試行回数と各試行後の待機時間を遅延列として表します。
// 試行回数は len(Delays) に等しく、i 回目の試行が失敗すると Delays[i] だけ
// 待ってから次の試行に進みます。最後の試行の失敗後も待機してから返ります
// (対象の外部システムが直後の再操作に弱いため、この形を保っています)。
type Policy struct {
	Delays []time.Duration
}

// Exponential は base, 2*base, 4*base, ... と倍加する attempts 個の遅延列を返します。
func Exponential(base time.Duration, attempts int) Policy {
	delays := make([]time.Duration, attempts)
	d := base
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return Policy{Delays: delays}
}

// Fixed は同一の遅延を attempts 個並べた遅延列を返します。
func Fixed(delay time.Duration, attempts int) Policy {
	delays := make([]time.Duration, attempts)
	for i := range delays {
		delays[i] = delay
	}
	return Policy{Delays: delays}
}

// Do は op をスケジュールに従って実行します。op が nil を返した時点で成功です。
// すべての試行が失敗した場合は最後のエラーを返します。待機中に ctx が
// キャンセルされた場合は ctx.Err() を返します。
func (p Policy) Do(ctx context.Context, op func() error) error {
	var lastErr error
	for _, delay := range p.Delays {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = op(); lastErr == nil {
			return nil
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
