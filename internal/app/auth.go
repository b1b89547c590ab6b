package app

import (
	"net/http"
	"strings"

	"github.com/tempizhere/linkrusk-admin/internal/session"
	"go.uber.org/zap"
)

// RenderLogin рисует форму входа. Вызывается шлюзом сессии вместо
// любой защищённой страницы, пока сессия не подтверждена.
func (a *App) RenderLogin(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "login", nil)
}

// HandleLogin обрабатывает отправку формы входа: проверяет поля,
// пробует учётные данные живым запросом и сохраняет их при успехе
func (a *App) HandleLogin(w http.ResponseWriter, r *http.Request) {
	backendURL := r.FormValue("backend_url")
	token := r.FormValue("token")

	if backendURL == "" || token == "" {
		a.renderAlert(w, "Please fill in both fields.", "/")
		return
	}
	if !strings.HasPrefix(backendURL, "http://") && !strings.HasPrefix(backendURL, "https://") {
		a.renderAlert(w, "Please enter a valid URL starting with http:// or https://", "/")
		return
	}
	backendURL = strings.TrimSuffix(backendURL, "/")

	if !a.shortener.Probe(r.Context(), backendURL, token) {
		a.renderAlert(w, "Invalid login information. Please try again.", "/")
		return
	}

	if err := a.store.Write(session.Credentials{BackendURL: backendURL, Token: token}); err != nil {
		a.logger.Error("Failed to persist session", zap.Error(err))
		a.renderAlert(w, "Failed to save the login info. Please try again later.", "/")
		return
	}
	a.renderAlert(w, "Login successful!", "/")
}

// HandleLogout очищает сессию и перезагружает приложение с корня
func (a *App) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Clear(); err != nil {
		a.logger.Warn("Failed to clear session", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
