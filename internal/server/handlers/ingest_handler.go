package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"ap-pages-web/internal/domain"
)

// リクエストボディの上限。brief とインライン添付 (data URI) を想定しています。
const maxIngestBody = 8 << 20

// ingestResponse は受理された Task の処理結果です。
type ingestResponse struct {
	OK        bool   `json:"ok"`
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
}

// HandleIngest は Task の受信を処理します。共有シークレットの検証は
// いかなる副作用よりも先に行い、不一致は 401 で拒否します。
func (h *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	var task domain.Task
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBody)).Decode(&task); err != nil {
		slog.Warn("リクエストボディの解析に失敗しました", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// タイミング攻撃を避けるため定数時間比較を使用します。
	if subtle.ConstantTimeCompare([]byte(task.Secret), []byte(h.cfg.SharedSecret)) != 1 {
		slog.WarnContext(r.Context(), "共有シークレットが一致しません", "task", task.TaskID)
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidSecret.Error())
		return
	}

	if msg, ok := validateTask(task); !ok {
		slog.Warn("Task の検証に失敗しました", "task", task.TaskID, "reason", msg)
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.executor.Execute(r.Context(), task)
	if err != nil {
		slog.Error("Task の実行に失敗しました", "task", task.TaskID, "round", task.Round, "error", err)
		writeError(w, http.StatusInternalServerError, "deployment failed")
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{
		OK:        true,
		RepoURL:   result.RepoURL,
		CommitSHA: result.CommitSHA,
		PagesURL:  result.PagesURL,
	})
}

// validateTask は受理に必要な最小限のフィールドを検査します。
func validateTask(task domain.Task) (string, bool) {
	if task.TaskID == "" {
		return "task is required", false
	}
	if task.Round < 1 {
		return "round must be >= 1", false
	}
	if task.EvaluationURL == "" {
		return "evaluation_url is required", false
	}
	if task.Brief == "" {
		return "brief is required", false
	}
	return "", true
}
