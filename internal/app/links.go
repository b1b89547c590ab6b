package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/linkrusk-admin/internal/forms"
	"github.com/tempizhere/linkrusk-admin/internal/models"
)

// показывается вместо URL, если бэкенд его не вернул
const urlUnavailable = "Failed to display"

// linkView — данные карточки ссылки для шаблонов
type linkView struct {
	Key        string
	URL        string
	Expiration string
}

// listData — данные страницы списка
type listData struct {
	Links []linkView
}

func newLinkView(link models.Link) linkView {
	view := linkView{Key: link.Short.Key, URL: urlUnavailable}
	if link.URL != nil {
		view.URL = *link.URL
	}
	if link.Expiration != nil {
		view.Expiration = forms.FormatExpiration(*link.Expiration)
	}
	return view
}

// HandleList обрабатывает GET-запросы на "/list"
func (a *App) HandleList(w http.ResponseWriter, r *http.Request) {
	links, err := a.shortener.List(r.Context())
	if err != nil {
		a.surfaceError(w, "fetch the list", err, "/")
		return
	}

	data := listData{Links: make([]linkView, 0, len(links))}
	for _, link := range links {
		data.Links = append(data.Links, newLinkView(link))
	}
	a.render(w, http.StatusOK, "list", data)
}

// HandleLinkDetail обрабатывает GET-запросы на "/link/{key}".
// Ссылка ищется по ключу в свежезагруженном списке, побайтовым сравнением.
func (a *App) HandleLinkDetail(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	links, err := a.shortener.List(r.Context())
	if err != nil {
		a.surfaceError(w, "fetch the list", err, "/")
		return
	}

	for _, link := range links {
		if link.Short.Key == key {
			a.render(w, http.StatusOK, "link", newLinkView(link))
			return
		}
	}
	a.render(w, http.StatusOK, "link_not_found", nil)
}

// HandleUpdate обрабатывает отправку формы редактирования ссылки
func (a *App) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	back := "/link/" + key

	if !a.tryBeginSubmit(w, back) {
		return
	}
	defer a.submitMu.Unlock()

	url := r.FormValue("url")
	if url == "" {
		a.renderAlert(w, "Please provide a URL.", back)
		return
	}
	expiration, err := forms.ParseExpiration(r.FormValue("expiration"))
	if err != nil {
		a.renderAlert(w, err.Error(), back)
		return
	}
	ttl, err := forms.ParseExpirationTTL(r.FormValue("expirationTtl"))
	if err != nil {
		a.renderAlert(w, err.Error(), back)
		return
	}

	body := models.UpdateRequest{
		Short:         key,
		URL:           url,
		Expiration:    expiration,
		ExpirationTTL: ttl,
	}
	if err := a.shortener.Update(r.Context(), body); err != nil {
		a.surfaceError(w, "update the link", err, back)
		return
	}
	a.renderAlert(w, "Link updated", back)
}

// HandleDelete обрабатывает удаление ссылки. Подтверждение запрашивается
// на стороне браузера до отправки формы: при отказе запрос не приходит вовсе.
func (a *App) HandleDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	back := "/link/" + key

	if !a.tryBeginSubmit(w, back) {
		return
	}
	defer a.submitMu.Unlock()

	if err := a.shortener.Delete(r.Context(), key); err != nil {
		a.surfaceError(w, "delete the link", err, back)
		return
	}
	a.renderAlert(w, "Link deleted", "/")
}

// HandleCreateForm обрабатывает GET-запросы на "/create"
func (a *App) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "create", nil)
}

// HandleCreate обрабатывает отправку формы создания ссылки
func (a *App) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !a.tryBeginSubmit(w, "/create") {
		return
	}
	defer a.submitMu.Unlock()

	url := r.FormValue("url")
	if url == "" {
		a.renderAlert(w, "Please provide a URL.", "/create")
		return
	}
	length, err := forms.ParseLength(r.FormValue("length"))
	if err != nil {
		a.renderAlert(w, err.Error(), "/create")
		return
	}
	expiration, err := forms.ParseExpiration(r.FormValue("expiration"))
	if err != nil {
		a.renderAlert(w, err.Error(), "/create")
		return
	}
	ttl, err := forms.ParseExpirationTTL(r.FormValue("expirationTtl"))
	if err != nil {
		a.renderAlert(w, err.Error(), "/create")
		return
	}

	body := models.CreateRequest{
		URL:           url,
		Length:        length,
		Number:        forms.ParseCheckbox(r.FormValue("number")),
		Capital:       forms.ParseCheckbox(r.FormValue("capital")),
		Lowercase:     forms.ParseCheckbox(r.FormValue("lowercase")),
		Expiration:    expiration,
		ExpirationTTL: ttl,
	}
	key, err := a.shortener.Create(r.Context(), body)
	if err != nil {
		a.surfaceError(w, "create the link", err, "/create")
		return
	}
	a.renderAlert(w, "Link created: "+key, "/link/"+key)
}
