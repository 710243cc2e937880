package generator

import (
	"fmt"
	"regexp"
	"strings"

	"ap-pages-web/internal/domain"
)

// fencedBlock は言語マーカー付きのコードフェンスにマッチします。
var fencedBlock = regexp.MustCompile("(?s)```([a-zA-Z0-9.+-]*)\n(.*?)```")

// ExtractFiles はモデル応答のテキストを走査し、名前付きファイルのマッピングへ変換します。
// マーカーの分類規則:
//   - "html" を含む       → HTML ファイル
//   - "js"/"jsx" または "javascript" を含む → スクリプト
//   - "css" を含む        → スタイルシート
//   - それ以外            → 無視
//
// 各カテゴリの最初のマッチは正準名 (index.html / script.js / style.css) になり、
// 2 つ目以降は連番サフィックスで衝突を避けます。どのカテゴリにも一致しない場合、
// 応答全体がエントリポイントのファイルになります。戻り値には必ず 1 件以上が含まれ、
// エントリポイントの存在が保証されます。
func ExtractFiles(response string) *domain.FileSet {
	files := domain.NewFileSet()

	var htmlCount, jsCount, cssCount int
	for _, m := range fencedBlock.FindAllStringSubmatch(response, -1) {
		marker := strings.ToLower(m[1])
		content := strings.TrimSpace(m[2])

		switch {
		case strings.Contains(marker, "html"):
			htmlCount++
			files.Add(indexedName(domain.EntryPoint, "page%d.html", htmlCount), content)
		case marker == "js" || marker == "jsx" || strings.Contains(marker, "javascript"):
			jsCount++
			files.Add(indexedName("script.js", "script%d.js", jsCount), content)
		case strings.Contains(marker, "css"):
			cssCount++
			files.Add(indexedName("style.css", "style%d.css", cssCount), content)
		}
	}

	if files.Len() == 0 {
		files.Add(domain.EntryPoint, strings.TrimSpace(response))
	}
	files.EnsureEntryPoint()
	return files
}

func indexedName(canonical, pattern string, count int) string {
	if count == 1 {
		return canonical
	}
	return fmt.Sprintf(pattern, count)
}
