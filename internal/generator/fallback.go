package generator

import (
	"html"

	"ap-pages-web/internal/domain"
)

// fallbackFileSet はネットワークに依存しない決定的な最小構成ページを返します。
// モデル資格情報の欠如・空応答・API エラーのいずれでもこの経路に落ち、
// パイプラインは常にデプロイ可能な成果物を生み出せます。
func fallbackFileSet(brief string) *domain.FileSet {
	files := domain.NewFileSet()
	files.Add(domain.EntryPoint, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>Auto App</title>
<meta name="viewport" content="width=device-width, initial-scale=1" />
<link rel="stylesheet" href="style.css" />
</head>
<body>
<main>
  <h1>Auto App</h1>
  <p>This minimal page was generated as a fallback.</p>
  <pre id="brief">`+html.EscapeString(brief)+`</pre>
</main>
<script src="script.js"></script>
</body>
</html>
`)
	files.Add("style.css", "body{font-family:system-ui,Arial,sans-serif;padding:2rem}pre{white-space:pre-wrap}")
	files.Add("script.js", "console.log('fallback app ready');")
	return files
}
