// Package view は埋め込みの HTML テンプレートを提供する
package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates 埋め込みテンプレートをすべて読み込む
// テンプレート名はファイル内の {{define}} で決まる
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}
