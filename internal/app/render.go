package app

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"
)

// alertData — данные страницы с модальным сообщением и переходом
type alertData struct {
	Message  string
	Location string
}

// render выполняет именованный шаблон и пишет результат с заданным статусом
func (a *App) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("Failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("Failed to write response", zap.Error(err))
	}
}

// renderAlert показывает модальное сообщение и переводит оператора на location.
// Переход на ту же страницу играет роль перезагрузки.
func (a *App) renderAlert(w http.ResponseWriter, message, location string) {
	a.render(w, http.StatusOK, "alert", alertData{Message: message, Location: location})
}
