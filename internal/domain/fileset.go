package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EntryPoint は静的ホスティングが既定で読み込むファイル名です。
const EntryPoint = "index.html"

// FileSet は相対ファイル名からテキスト内容への挿入順付きマッピングです。
// キーは一意で、モデル呼び出しごとに新しく生成されます。
type FileSet struct {
	names   []string
	content map[string]string
}

// NewFileSet は空の FileSet を生成します。
func NewFileSet() *FileSet {
	return &FileSet{content: make(map[string]string)}
}

// Add はファイルを追加します。同名の場合は内容を置き換え、挿入位置は保持します。
func (fs *FileSet) Add(name, content string) {
	if _, ok := fs.content[name]; !ok {
		fs.names = append(fs.names, name)
	}
	fs.content[name] = content
}

// Get は名前に対応する内容を返します。
func (fs *FileSet) Get(name string) (string, bool) {
	c, ok := fs.content[name]
	return c, ok
}

// Has は名前のファイルが存在するか返します。
func (fs *FileSet) Has(name string) bool {
	_, ok := fs.content[name]
	return ok
}

// Len は登録されたファイル数を返します。
func (fs *FileSet) Len() int { return len(fs.names) }

// Names は挿入順のファイル名一覧を返します。
func (fs *FileSet) Names() []string {
	out := make([]string, len(fs.names))
	copy(out, fs.names)
	return out
}

// EnsureEntryPoint はエントリポイントの存在を保証します。
// 見つからない場合は最初に挿入されたファイルの内容を EntryPoint 名で複製します。
func (fs *FileSet) EnsureEntryPoint() {
	if fs.Len() == 0 || fs.Has(EntryPoint) {
		return
	}
	first := fs.content[fs.names[0]]
	fs.Add(EntryPoint, first)
}

// WriteTo はすべてのファイルを dir 配下へ書き出します。
// ネストした相対パスは許容し、ディレクトリ外への脱出は拒否します。
func (fs *FileSet) WriteTo(dir string) error {
	for _, name := range fs.names {
		cleaned := filepath.Clean(filepath.Join(dir, filepath.FromSlash(name)))
		if !strings.HasPrefix(cleaned, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("ファイル名がディレクトリ外を指しています: %s", name)
		}
		if err := os.MkdirAll(filepath.Dir(cleaned), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", name, err)
		}
		if err := os.WriteFile(cleaned, []byte(fs.content[name]), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}
