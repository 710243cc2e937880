// Package generator は自然言語の brief から静的 Web アプリの
// ファイル一式を合成します。モデル呼び出しに失敗しても決定的な
// フォールバックへ縮退し、ハードエラーを上位へ伝播させません。
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ap-pages-web/internal/config"
	"ap-pages-web/internal/domain"

	"google.golang.org/genai"
)

// Request は 1 回の生成呼び出しの入力です。
type Request struct {
	Brief           string
	AttachmentNames []string
	// PriorFiles が非 nil の場合は既存プロジェクトの反復更新として扱い、
	// モデルに直前の内容をコンテキストとして与えます。
	PriorFiles *domain.FileSet
}

// Generator は brief からファイル一式を生成するコンポーネントの抽象です。
type Generator interface {
	Generate(ctx context.Context, req Request) (*domain.FileSet, error)
}

// GeminiGenerator は Gemini API を利用する Generator の実装です。
type GeminiGenerator struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
}

// NewGeminiGenerator は Gemini クライアントを初期化します。
// API キーが未設定の場合はクライアントを持たないまま生成し、
// Generate は常にフォールバック経路を通ります。
func NewGeminiGenerator(ctx context.Context, cfg *config.Config) (*GeminiGenerator, error) {
	g := &GeminiGenerator{
		model:           cfg.GeminiModel,
		temperature:     float32(cfg.Temperature),
		maxOutputTokens: int32(cfg.MaxOutputTokens),
	}

	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; all generations will use the fallback page")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	g.client = client
	return g, nil
}

// Generate は brief からファイル一式を合成します。エントリポイントの存在を保証します。
// モデル呼び出しの失敗 (レート制限を含む) はログに記録され、フォールバックで回復します。
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*domain.FileSet, error) {
	if g.client == nil {
		slog.Info("No model credential; writing fallback app", "brief_len", len(req.Brief))
		return fallbackFileSet(req.Brief), nil
	}

	prompt := buildPrompt(req.Brief, req.AttachmentNames, req.PriorFiles)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: g.maxOutputTokens,
	})
	if err != nil {
		slog.Error("Gemini call failed; writing fallback app", "error", err, "model", g.model)
		return fallbackFileSet(req.Brief), nil
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		slog.Warn("Gemini returned empty response; writing fallback app", "model", g.model)
		return fallbackFileSet(req.Brief), nil
	}

	files := ExtractFiles(text)
	slog.Info("Generation completed", "model", g.model, "files", files.Len())
	return files, nil
}
