package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"ap-pages-web/internal/domain"
)

// buildPrompt はモデルへ渡す決定的な指示文を構築します。
// brief、添付ファイル名 (相対 fetch の案内用)、固定の出力形式制約を埋め込み、
// 既存プロジェクトの更新時は直前のファイル内容をファイル名ヘッダー付きで
// 連結して、無関係な部分の保全を指示します。
func buildPrompt(brief string, attachmentNames []string, prior *domain.FileSet) string {
	namesJSON, _ := json.Marshal(attachmentNames)
	if attachmentNames == nil {
		namesJSON = []byte("[]")
	}

	var sb strings.Builder
	sb.WriteString(`You are an expert frontend engineer. Build a small, production-ready static web app for the following brief:

BRIEF:
`)
	sb.WriteString(brief)
	sb.WriteString("\n\nATTACHMENTS AVAILABLE IN THE SAME FOLDER (relative URLs):\n")
	sb.Write(namesJSON)
	sb.WriteString(`

REQUIREMENTS:
- Output your ENTIRE solution as fenced code blocks only. Use these blocks:
  - ` + "```html ...```" + ` for HTML (must include <head> with meta charset and title)
  - ` + "```css ...```" + ` for styles (optional)
  - ` + "```javascript ...```" + ` for logic (optional)
- The app must be fully static (no server code) and work over GitHub Pages.
- If the brief mentions query params (e.g. ?url=...), implement them using browser fetch.
- If attachments include data files (e.g. input.md, data.csv), load them with relative fetch('input.md') etc.
- Include minimal accessibility (labels, aria-live when specified).
- Avoid external secrets. If a token param is mentioned, accept via ?token= in URL.
- Keep it small and clean. No build tools.
`)

	if prior != nil && prior.Len() > 0 {
		sb.WriteString(`
EXISTING PROJECT FILES (you are UPDATING this project):
`)
		for _, name := range prior.Names() {
			content, _ := prior.Get(name)
			fmt.Fprintf(&sb, "--- %s ---\n%s\n", name, content)
		}
		sb.WriteString(`
Revise the files above to satisfy the new brief. Preserve the parts that are
unaffected by the change, and output the COMPLETE new contents of every file
you keep or modify.
`)
	}

	sb.WriteString(`
DELIVERABLE:
- Provide only the code blocks. Do not add explanations outside code blocks.
`)
	return sb.String()
}
