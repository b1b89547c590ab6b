package models

// Short описывает идентификатор короткой ссылки, присвоенный бэкендом
type Short struct {
	Key     string `json:"key"`
	NoHTTPS string `json:"noHttps"`
	Full    string `json:"full"`
}

// Link представляет запись короткой ссылки, полученную от бэкенда.
// URL и Expiration могут отсутствовать в ответе.
type Link struct {
	Short      Short   `json:"short"`
	URL        *string `json:"url,omitempty"`
	Expiration *int64  `json:"expiration,omitempty"`
}

// ListData содержит одну страницу списка ссылок
type ListData struct {
	Cursor       *string `json:"cursor,omitempty"`
	ListComplete bool    `json:"list_complete"`
	Links        []Link  `json:"links"`
}

// CreateData содержит короткую ссылку, созданную бэкендом
type CreateData struct {
	Short string `json:"short"`
}

// CreateRequest — тело запроса POST /api/v1/create.
// Отсутствующие поля не сериализуются вовсе (не null и не пустая строка),
// чтобы бэкенд применил собственные значения по умолчанию.
type CreateRequest struct {
	URL           string  `json:"url"`
	Length        *uint16 `json:"length,omitempty"`
	Number        *bool   `json:"number,omitempty"`
	Capital       *bool   `json:"capital,omitempty"`
	Lowercase     *bool   `json:"lowercase,omitempty"`
	Expiration    *int64  `json:"expiration,omitempty"`
	ExpirationTTL *uint32 `json:"expiration_ttl,omitempty"`
}

// UpdateRequest — тело запроса PUT /api/v1/update
type UpdateRequest struct {
	Short         string  `json:"short"`
	URL           string  `json:"url"`
	Expiration    *int64  `json:"expiration,omitempty"`
	ExpirationTTL *uint32 `json:"expiration_ttl,omitempty"`
}

// DeleteRequest — тело запроса DELETE /api/v1/delete.
// Бэкенд требует тело и на DELETE-запросе.
type DeleteRequest struct {
	Short string `json:"short"`
}

// ListResponse — конверт ответа /api/v1/list
type ListResponse struct {
	OK   bool      `json:"ok"`
	Msg  string    `json:"msg"`
	Data *ListData `json:"data,omitempty"`
}

// CreateResponse — конверт ответа /api/v1/create
type CreateResponse struct {
	OK   bool        `json:"ok"`
	Msg  string      `json:"msg"`
	Data *CreateData `json:"data,omitempty"`
}

// StatusResponse — конверт ответа без полезной нагрузки (update, delete)
type StatusResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}
