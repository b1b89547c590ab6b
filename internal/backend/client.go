// Package backend реализует типизированный HTTP-клиент бэкенда сокращения ссылок.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tempizhere/linkrusk-admin/internal/models"
	"github.com/tempizhere/linkrusk-admin/internal/session"
	"go.uber.org/zap"
)

// ErrNoSession возвращается, когда в хранилище нет сохранённой пары учётных данных.
// К этому моменту хранилище уже очищено самим Store.
var ErrNoSession = errors.New("no stored session")

// APIError — ошибка уровня приложения: бэкенд ответил неуспешным статусом,
// сообщение берётся из конверта ответа
type APIError struct {
	Status int
	Msg    string
}

// Error возвращает сообщение из конверта ответа
func (e *APIError) Error() string {
	return e.Msg
}

// Client выполняет операции против бэкенда, читая учётные данные
// из хранилища сессии перед каждой операцией
type Client struct {
	store  session.Store
	client *http.Client
	logger *zap.Logger
}

// NewClient создаёт новый экземпляр Client
func NewClient(store session.Store, logger *zap.Logger) *Client {
	return &Client{
		store:  store,
		client: &http.Client{},
		logger: logger,
	}
}

// Probe проверяет пару (URL бэкенда, токен): запрашивает список ссылок
// и возвращает true только при статусе 200. Сетевая ошибка означает false.
func (c *Client) Probe(ctx context.Context, baseURL, token string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/list", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Probe request failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// List возвращает полный список ссылок, прозрачно обходя все страницы по курсору.
// Страницы запрашиваются строго последовательно, порядок ссылок — порядок ответов бэкенда.
func (c *Client) List(ctx context.Context) ([]models.Link, error) {
	creds, ok := c.store.Read()
	if !ok {
		return nil, ErrNoSession
	}

	var links []models.Link
	var cursor string
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, creds.BackendURL+"/api/v1/list", nil)
		if err != nil {
			return nil, err
		}
		if cursor != "" {
			q := req.URL.Query()
			q.Set("c", cursor)
			req.URL.RawQuery = q.Encode()
		}
		req.Header.Set("Authorization", "Bearer "+creds.Token)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch list page: %w", err)
		}

		var page models.ListResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode list page: %w", err)
		}
		if page.Data == nil {
			return nil, fmt.Errorf("list response has no data: %s", page.Msg)
		}

		links = append(links, page.Data.Links...)
		if page.Data.ListComplete {
			break
		}
		cursor = ""
		if page.Data.Cursor != nil {
			cursor = *page.Data.Cursor
		}
	}
	return links, nil
}

// Create создаёт короткую ссылку и возвращает её ключ.
// Бэкенд может вернуть ключ в виде "host/key" — префикс с собственным хостом
// отрезается один раз, чужой хост передаётся вызывающему как есть.
func (c *Client) Create(ctx context.Context, body models.CreateRequest) (string, error) {
	creds, ok := c.store.Read()
	if !ok {
		return "", ErrNoSession
	}

	resp, err := c.send(ctx, http.MethodPost, creds.BackendURL+"/api/v1/create", creds.Token, body)
	if err != nil {
		return "", fmt.Errorf("create link: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", decodeAPIError(resp)
	}

	var created models.CreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	if created.Data == nil {
		return "", fmt.Errorf("create response has no data: %s", created.Msg)
	}
	return stripHostPrefix(created.Data.Short, creds.BackendURL), nil
}

// Update обновляет существующую ссылку
func (c *Client) Update(ctx context.Context, body models.UpdateRequest) error {
	creds, ok := c.store.Read()
	if !ok {
		return ErrNoSession
	}

	resp, err := c.send(ctx, http.MethodPut, creds.BackendURL+"/api/v1/update", creds.Token, body)
	if err != nil {
		return fmt.Errorf("update link: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return decodeAPIError(resp)
	}
	return nil
}

// Delete удаляет ссылку по ключу
func (c *Client) Delete(ctx context.Context, shortKey string) error {
	creds, ok := c.store.Read()
	if !ok {
		return ErrNoSession
	}

	resp, err := c.send(ctx, http.MethodDelete, creds.BackendURL+"/api/v1/delete", creds.Token,
		models.DeleteRequest{Short: shortKey})
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return decodeAPIError(resp)
	}
	return nil
}

// send выполняет запрос с JSON-телом и заголовком авторизации
func (c *Client) send(ctx context.Context, method, url, token string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// isSuccess проверяет, что статус ответа лежит в диапазоне 2xx
func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// decodeAPIError извлекает сообщение об ошибке из конверта неуспешного ответа
func decodeAPIError(resp *http.Response) error {
	var envelope models.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode error response: %w", err)
	}
	return &APIError{Status: resp.StatusCode, Msg: envelope.Msg}
}

// stripHostPrefix отрезает от ключа префикс "host/", где host — URL бэкенда без схемы
func stripHostPrefix(short, baseURL string) string {
	host := strings.TrimPrefix(baseURL, "http://")
	host = strings.TrimPrefix(host, "https://")
	return strings.TrimPrefix(short, host+"/")
}
