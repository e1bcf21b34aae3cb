package infrastructure

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
	"github.com/svera/camposanto/internal/i18n"
)

// TemplateEngine loads the mail templates found in viewsFS
func TemplateEngine(viewsFS fs.FS, translator i18n.Translator) *html.Engine {
	engine := html.NewFileSystem(http.FS(viewsFS), ".html")

	engine.AddFunc("t", func(lang, key string, values ...any) template.HTML {
		return template.HTML(template.HTMLEscapeString(translator.T(lang, key, values...)))
	})

	return engine
}
