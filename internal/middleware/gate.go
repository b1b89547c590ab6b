package middleware

import (
	"context"
	"net/http"

	"github.com/tempizhere/linkrusk-admin/internal/session"
)

// Prober проверяет пару (URL бэкенда, токен) живым запросом к бэкенду
type Prober interface {
	Probe(ctx context.Context, baseURL, token string) bool
}

// SessionGate пропускает запрос к защищённым маршрутам только при валидной сессии.
// При отсутствии сохранённых учётных данных проверка бэкенда не выполняется,
// вместо запрошенной страницы рисуется форма входа. Каждая загрузка страницы
// заново проходит проверку, поэтому перезагрузка после входа или выхода
// перезапускает её с чистого состояния.
func SessionGate(store session.Store, prober Prober, loginView http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Вход и выход обрабатываются вне защищённого дерева
			if r.URL.Path == "/login" || r.URL.Path == "/logout" {
				next.ServeHTTP(w, r)
				return
			}

			creds, ok := store.Read()
			if !ok {
				loginView(w, r)
				return
			}
			if !prober.Probe(r.Context(), creds.BackendURL, creds.Token) {
				loginView(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
