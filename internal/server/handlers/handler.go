// Package handlers は HTTP エンドポイントの実装を提供します。
package handlers

import (
	"context"

	"ap-pages-web/internal/config"
	"ap-pages-web/internal/domain"
)

// DeployExecutor は Task の実行経路の抽象です。ハンドラーはこの
// インターフェースのみに依存し、パイプラインの実装詳細を知りません。
type DeployExecutor interface {
	Execute(ctx context.Context, task domain.Task) (domain.DeployResult, error)
}

type Handler struct {
	cfg      *config.Config
	executor DeployExecutor
}

// NewHandler は指定された構成と実行器に基づいて新しいハンドラーを初期化します。
func NewHandler(cfg *config.Config, executor DeployExecutor) *Handler {
	return &Handler{
		cfg:      cfg,
		executor: executor,
	}
}
