package domain

// NotificationPayload は評価者エンドポイントへ送信する完了報告です。
// Task ごとに一度だけ構築され、応答が確認されるかリトライが尽きるまで再送されます。
type NotificationPayload struct {
	Email     string `json:"email"`
	Task      string `json:"task"`
	Round     int    `json:"round"`
	Nonce     string `json:"nonce"`
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
}

// NewNotificationPayload は Task とデプロイ結果から通知ペイロードを組み立てます。
func NewNotificationPayload(task Task, result DeployResult) NotificationPayload {
	return NotificationPayload{
		Email:     task.Email,
		Task:      task.TaskID,
		Round:     task.Round,
		Nonce:     task.Nonce,
		RepoURL:   result.RepoURL,
		CommitSHA: result.CommitSHA,
		PagesURL:  result.PagesURL,
	}
}

// DeployEvent は Slack 等の運用通知コンポーネントで共有されるデータ構造です。
type DeployEvent struct {
	// ExecutionID は 1 回のパイプライン実行を識別する ID です。
	ExecutionID string `json:"execution_id"`

	// TaskID と Round はどのプロジェクトの何回目の生成かを示します。
	TaskID string `json:"task_id"`
	Round  int    `json:"round"`

	// Brief は生成の元になった自然言語の指示です。
	Brief string `json:"brief"`

	// RepoURL / PagesURL / CommitSHA は公開結果です。エラー通知では空のことがあります。
	RepoURL   string `json:"repo_url"`
	PagesURL  string `json:"pages_url"`
	CommitSHA string `json:"commit_sha"`
}
