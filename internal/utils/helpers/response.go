package helpers

import (
	"encoding/json"
	"net/http"
)

// JSON отдаёт данные служебных ручек (например /healthz) в конверте
// {"data": ...}. Страницы приложения рендерятся шаблонами через Render.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Data interface{} `json:"data,omitempty"`
	}{Data: data})
}
