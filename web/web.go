package web

import (
	"embed"
	"html/template"
	"time"

	"license-hub/types"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(types.DateLayout)
	},
	"deref": func(v *uint) uint {
		if v == nil {
			return 0
		}
		return *v
	},
}

// Templates 解析内嵌的页面模板，交给 gin.SetHTMLTemplate
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
