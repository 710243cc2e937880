package handlers

import "net/http"

// HandleHealth は稼働確認用のエンドポイントです。
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "ap-pages-web",
		"status":  "ok",
		"branch":  h.cfg.DefaultBranch,
	})
}
