package domain

// Attachment は Task に添付される名前付きコンテンツへの参照です。
// URL は "data:" 形式のインラインペイロード、またはリモートの HTTP(S) URL のいずれかです。
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Task は /ingest で受け付ける 1 回分の生成・デプロイ指示を表します。
// 受信後は不変であり、1 つの Task は 1 回の公開または更新サイクルに対応します。
type Task struct {
	Email         string       `json:"email"`
	Secret        string       `json:"secret"`
	TaskID        string       `json:"task"`
	Round         int          `json:"round"`
	Nonce         string       `json:"nonce"`
	Brief         string       `json:"brief"`
	Checks        []string     `json:"checks"`
	EvaluationURL string       `json:"evaluation_url"`
	Attachments   []Attachment `json:"attachments"`
}

// DeployResult は公開・更新サイクルの成果物です。呼び出し元への応答と
// 評価者への通知ペイロードの両方がここから導出されます。
type DeployResult struct {
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
}
