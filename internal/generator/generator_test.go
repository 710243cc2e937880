package generator

import (
	"context"
	"strings"
	"testing"

	"ap-pages-web/internal/config"
	"ap-pages-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_WithoutAPIKey_UsesFallback(t *testing.T) {
	cfg := &config.Config{
		GeminiModel:     config.DefaultModel,
		Temperature:     config.DefaultTemperature,
		MaxOutputTokens: config.DefaultMaxOutputTokens,
	}
	gen, err := NewGeminiGenerator(context.Background(), cfg)
	require.NoError(t, err)

	files, err := gen.Generate(context.Background(), Request{Brief: "a todo list"})
	require.NoError(t, err)

	require.True(t, files.Has(domain.EntryPoint))
	assert.True(t, files.Has("style.css"))
	assert.True(t, files.Has("script.js"))

	content, _ := files.Get(domain.EntryPoint)
	assert.Contains(t, content, "a todo list")
}

func TestFallbackFileSet_EscapesBrief(t *testing.T) {
	files := fallbackFileSet(`<script>alert("x")</script>`)

	content, ok := files.Get(domain.EntryPoint)
	require.True(t, ok)
	assert.NotContains(t, content, `<script>alert`)
	assert.Contains(t, content, "&lt;script&gt;")
}

func TestBuildPrompt_ContainsBriefAndAttachments(t *testing.T) {
	prompt := buildPrompt("weather dashboard", []string{"data.csv", "input.md"}, nil)

	assert.Contains(t, prompt, "weather dashboard")
	assert.Contains(t, prompt, `["data.csv","input.md"]`)
	assert.NotContains(t, prompt, "EXISTING PROJECT FILES")
}

func TestBuildPrompt_NoAttachments(t *testing.T) {
	prompt := buildPrompt("brief", nil, nil)
	assert.Contains(t, prompt, "[]")
}

func TestBuildPrompt_WithPriorFiles(t *testing.T) {
	prior := domain.NewFileSet()
	prior.Add("index.html", "<html>old</html>")
	prior.Add("style.css", "body{}")

	prompt := buildPrompt("add dark mode", nil, prior)

	assert.Contains(t, prompt, "EXISTING PROJECT FILES")
	assert.Contains(t, prompt, "--- index.html ---\n<html>old</html>")
	assert.Contains(t, prompt, "--- style.css ---\nbody{}")
	// 既存ファイルの列挙はヘッダー直後に挿入順で並ぶ
	assert.Less(t,
		strings.Index(prompt, "--- index.html ---"),
		strings.Index(prompt, "--- style.css ---"),
	)
}
