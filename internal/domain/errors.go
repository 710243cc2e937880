package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidSecret は共有シークレット不一致を表します。
// 副作用が発生する前に 401 として呼び出し元へ返されます。
var ErrInvalidSecret = errors.New("invalid shared secret")

// RepoOpError はバージョン管理またはホスティング API の操作失敗を表します。
// 冪等な「既に存在する」ケースを除き、Task 全体を中断させる致命的エラーです。
type RepoOpError struct {
	Step string
	Err  error
}

func (e *RepoOpError) Error() string {
	return fmt.Sprintf("repository operation %q failed: %v", e.Step, e.Err)
}

func (e *RepoOpError) Unwrap() error { return e.Err }

// NewRepoOpError はステップ名付きの RepoOpError を生成します。
func NewRepoOpError(step string, err error) *RepoOpError {
	return &RepoOpError{Step: step, Err: err}
}

// AttachmentError は添付ファイルの解決失敗を表します。生成の開始前に Task を中断させます。
type AttachmentError struct {
	Name string
	Err  error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("attachment %q could not be resolved: %v", e.Name, e.Err)
}

func (e *AttachmentError) Unwrap() error { return e.Err }
