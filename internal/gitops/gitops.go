// Package gitops はバージョン管理操作を抽象化します。ビジネスロジックが
// 外部プロセスを直接起動するのではなく、このインターフェースを介することで
// テスト時にフェイク実装へ差し替えられます。
package gitops

import "context"

// Runner は 1 つの作業ツリーに対するバージョン管理操作の集合です。
// すべての操作はブロッキングであり、ctx によって上限が与えられます。
type Runner interface {
	// Init は dir に指定ブランチを初期ブランチとする作業ツリーを作成します。
	Init(ctx context.Context, dir, branch string) error
	// SetIdentity はコミッターの名前とメールアドレスを設定します。
	// 実行環境には既定の識別情報が存在しない前提です。
	SetIdentity(ctx context.Context, dir, name, email string) error
	// AddAll は作業ツリーの全変更をステージします。
	AddAll(ctx context.Context, dir string) error
	// Commit はステージ済みの変更をコミットします。
	Commit(ctx context.Context, dir, message string) error
	// Clone は url のリポジトリを dir へ複製します。
	Clone(ctx context.Context, url, dir string) error
	// Checkout は指定ブランチへ切り替えます。ローカルブランチが存在しない
	// 場合はリモート追跡ブランチから作成します。
	Checkout(ctx context.Context, dir, branch string) error
	// AddRemote は名前付きリモートを追加します。
	AddRemote(ctx context.Context, dir, name, url string) error
	// SetRemoteURL は既存リモートの URL を書き換えます。認証付き URL での
	// push 後に資格情報をローカル設定から消すために使用します。
	SetRemoteURL(ctx context.Context, dir, name, url string) error
	// Push は指定リモートの指定ブランチへプッシュします。
	Push(ctx context.Context, dir, remote, branch string) error
	// HeadSHA は HEAD のコミット識別子を返します。
	HeadSHA(ctx context.Context, dir string) (string, error)
}
