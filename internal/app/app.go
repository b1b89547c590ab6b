// Package app содержит представления админки: форму входа, список ссылок,
// карточку ссылки и форму создания.
package app

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/linkrusk-admin/internal/backend"
	"github.com/tempizhere/linkrusk-admin/internal/middleware"
	"github.com/tempizhere/linkrusk-admin/internal/models"
	"github.com/tempizhere/linkrusk-admin/internal/session"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Shortener описывает операции бэкенда, используемые представлениями
type Shortener interface {
	// Probe проверяет пару (URL бэкенда, токен)
	Probe(ctx context.Context, baseURL, token string) bool
	// List возвращает полный список ссылок
	List(ctx context.Context) ([]models.Link, error)
	// Create создаёт ссылку и возвращает её ключ
	Create(ctx context.Context, body models.CreateRequest) (string, error)
	// Update обновляет ссылку
	Update(ctx context.Context, body models.UpdateRequest) error
	// Delete удаляет ссылку по ключу
	Delete(ctx context.Context, shortKey string) error
}

// App содержит хендлеры представлений и их зависимости
type App struct {
	store     session.Store
	shortener Shortener
	logger    *zap.Logger
	tmpl      *template.Template
	// submitMu не допускает второй изменяющей отправки, пока первая не завершена:
	// create на бэкенде не идемпотентен
	submitMu sync.Mutex
}

// NewApp создаёт новое приложение
func NewApp(store session.Store, shortener Shortener, logger *zap.Logger) (*App, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &App{
		store:     store,
		shortener: shortener,
		logger:    logger,
		tmpl:      tmpl,
	}, nil
}

// Routes создаёт маршрутизатор админки. Все страницы, кроме входа и выхода,
// закрыты шлюзом сессии.
func (a *App) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(a.logger))
	r.Use(middleware.GzipMiddleware)
	r.Use(middleware.SessionGate(a.store, a.shortener, a.RenderLogin))

	r.Post("/login", a.HandleLogin)
	r.Post("/logout", a.HandleLogout)
	r.Get("/", a.HandleHome)
	r.Get("/list", a.HandleList)
	r.Get("/create", a.HandleCreateForm)
	r.Post("/create", a.HandleCreate)
	r.Get("/link/{key}", a.HandleLinkDetail)
	r.Post("/link/{key}", a.HandleUpdate)
	r.Post("/link/{key}/delete", a.HandleDelete)
	r.NotFound(a.HandleNotFound)
	return r
}

// HandleHome обрабатывает GET-запросы на "/"
func (a *App) HandleHome(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "home", nil)
}

// HandleNotFound обрабатывает запросы на незарегистрированные маршруты
func (a *App) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusNotFound, "notfound", nil)
}

// surfaceError показывает оператору модальное сообщение об ошибке операции бэкенда
// и возвращает его на страницу back. Отсутствие сессии всегда уводит на корень.
func (a *App) surfaceError(w http.ResponseWriter, action string, err error, back string) {
	a.logger.Debug("Backend operation failed", zap.String("action", action), zap.Error(err))

	var apiErr *backend.APIError
	switch {
	case errors.Is(err, backend.ErrNoSession):
		a.renderAlert(w, "Please login again.", "/")
	case errors.As(err, &apiErr):
		a.renderAlert(w, fmt.Sprintf("Failed to %s.\n\nError: %s", action, apiErr.Msg), back)
	default:
		a.renderAlert(w, fmt.Sprintf("Failed to %s. Please try again later.\n\n%s", action, err), back)
	}
}

// tryBeginSubmit захватывает блокировку отправки формы. При отказе оператору
// показывается сообщение о занятости и запрос к бэкенду не выполняется.
func (a *App) tryBeginSubmit(w http.ResponseWriter, back string) bool {
	if !a.submitMu.TryLock() {
		a.renderAlert(w, "Another submission is still in progress. Please wait.", back)
		return false
	}
	return true
}
