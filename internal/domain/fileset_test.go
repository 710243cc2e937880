package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSet_AddKeepsInsertionOrder(t *testing.T) {
	fs := NewFileSet()
	fs.Add("index.html", "<html>")
	fs.Add("style.css", "body{}")
	fs.Add("script.js", "void 0")

	assert.Equal(t, []string{"index.html", "style.css", "script.js"}, fs.Names())
	assert.Equal(t, 3, fs.Len())
}

func TestFileSet_AddReplaceKeepsPosition(t *testing.T) {
	fs := NewFileSet()
	fs.Add("index.html", "v1")
	fs.Add("style.css", "body{}")
	fs.Add("index.html", "v2")

	assert.Equal(t, []string{"index.html", "style.css"}, fs.Names())
	content, ok := fs.Get("index.html")
	require.True(t, ok)
	assert.Equal(t, "v2", content)
}

func TestFileSet_EnsureEntryPoint_PromotesFirstFile(t *testing.T) {
	fs := NewFileSet()
	fs.Add("style.css", "body{}")
	fs.Add("script.js", "void 0")

	fs.EnsureEntryPoint()

	content, ok := fs.Get(EntryPoint)
	require.True(t, ok)
	assert.Equal(t, "body{}", content)
	assert.Equal(t, 3, fs.Len())
}

func TestFileSet_EnsureEntryPoint_NoopWhenPresent(t *testing.T) {
	fs := NewFileSet()
	fs.Add(EntryPoint, "<html>")
	fs.EnsureEntryPoint()
	assert.Equal(t, 1, fs.Len())
}

func TestFileSet_EnsureEntryPoint_NoopWhenEmpty(t *testing.T) {
	fs := NewFileSet()
	fs.EnsureEntryPoint()
	assert.Equal(t, 0, fs.Len())
}

func TestFileSet_WriteTo(t *testing.T) {
	dir := t.TempDir()

	fs := NewFileSet()
	fs.Add("index.html", "<html>")
	fs.Add("assets/app.js", "void 0")

	require.NoError(t, fs.WriteTo(dir))

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "assets", "app.js"))
	require.NoError(t, err)
	assert.Equal(t, "void 0", string(data))
}

func TestFileSet_WriteTo_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()

	fs := NewFileSet()
	fs.Add("../escape.html", "<html>")

	err := fs.WriteTo(dir)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escape.html"))
}
