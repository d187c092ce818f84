package helpers

import (
	"html/template"
	"net/http"
	"shiftreport/internal/logger"
	"shiftreport/internal/web"
	"time"

	"go.uber.org/zap"
)

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"fmtTime": func(t time.Time) string {
			return t.Format("02 Jan 2006 15:04")
		},
	}).ParseFS(web.Templates, "templates/*.html"),
)

// Render отдаёт серверный HTML-шаблон по имени файла.
func Render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Log.Error("Ошибка рендеринга шаблона", zap.String("template", name), zap.Error(err))
	}
}
