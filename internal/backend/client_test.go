package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/linkrusk-admin/internal/models"
	"github.com/tempizhere/linkrusk-admin/internal/session"
	"go.uber.org/zap"
)

// recordedRequest хранит данные перехваченного запроса к фейковому бэкенду
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// newTestClient создаёт клиент с хранилищем, указывающим на фейковый бэкенд
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server, *[]recordedRequest) {
	t.Helper()
	requests := &[]recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		*requests = append(*requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	require.NoError(t, store.Write(session.Credentials{BackendURL: server.URL, Token: "abc"}))
	return NewClient(store, zap.NewNop()), server, requests
}

// emptySessionClient создаёт клиент с пустым хранилищем сессии
func emptySessionClient() *Client {
	return NewClient(session.NewMemoryStore(), zap.NewNop())
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func strptr(s string) *string { return &s }

func testLink(key string) models.Link {
	return models.Link{
		Short: models.Short{Key: key, NoHTTPS: "l.example.com/" + key, Full: "https://l.example.com/" + key},
		URL:   strptr("https://target/" + key),
	}
}

func TestClient_Probe(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected bool
	}{
		{"status 200", http.StatusOK, true},
		{"status 201 is not a valid probe", http.StatusCreated, false},
		{"unauthorized", http.StatusUnauthorized, false},
		{"server error", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			got := client.Probe(context.Background(), server.URL, "abc")
			assert.Equal(t, tt.expected, got)

			require.Len(t, *requests, 1)
			assert.Equal(t, http.MethodGet, (*requests)[0].Method)
			assert.Equal(t, "/api/v1/list", (*requests)[0].Path)
			assert.Equal(t, "Bearer abc", (*requests)[0].Auth)
		})
	}
}

func TestClient_Probe_NetworkError(t *testing.T) {
	client, server, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	assert.False(t, client.Probe(context.Background(), server.URL, "abc"))
}

func TestClient_List_WalksCursor(t *testing.T) {
	pages := []models.ListResponse{
		{OK: true, Data: &models.ListData{
			Cursor:       strptr("c1"),
			ListComplete: false,
			Links:        []models.Link{testLink("a1"), testLink("b2")},
		}},
		{OK: true, Data: &models.ListData{
			ListComplete: true,
			Links:        []models.Link{testLink("c3")},
		}},
	}
	var call int
	client, _, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, pages[call])
		call++
	})

	links, err := client.List(context.Background())
	require.NoError(t, err)

	// Порядок — конкатенация страниц в порядке ответов
	require.Len(t, links, 3)
	assert.Equal(t, "a1", links[0].Short.Key)
	assert.Equal(t, "b2", links[1].Short.Key)
	assert.Equal(t, "c3", links[2].Short.Key)

	// Ровно два запроса: первый без курсора, второй с c=c1
	require.Len(t, *requests, 2)
	assert.Equal(t, "", (*requests)[0].Query)
	assert.Equal(t, "c=c1", (*requests)[1].Query)
	assert.Equal(t, "Bearer abc", (*requests)[1].Auth)
}

func TestClient_List_EmptyPage(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.ListResponse{
			OK:   true,
			Data: &models.ListData{ListComplete: true, Links: []models.Link{}},
		})
	})

	links, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestClient_List_NoSession(t *testing.T) {
	client := emptySessionClient()

	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClient_List_NetworkError(t *testing.T) {
	client, server, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.List(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestClient_List_MissingData(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.ListResponse{OK: false, Msg: "boom"})
	})

	_, err := client.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestClient_Create(t *testing.T) {
	length := uint16(6)
	boolTrue := true
	req := models.CreateRequest{
		URL:       "https://target",
		Length:    &length,
		Number:    &boolTrue,
		Capital:   &boolTrue,
		Lowercase: &boolTrue,
	}

	var serverHost string
	client, server, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.CreateResponse{
			OK:   true,
			Data: &models.CreateData{Short: serverHost + "/xY9"},
		})
	})
	// URL тестового сервера имеет вид http://127.0.0.1:port
	serverHost = server.URL[len("http://"):]

	key, err := client.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "xY9", key)

	require.Len(t, *requests, 1)
	got := (*requests)[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/v1/create", got.Path)
	assert.Equal(t, "Bearer abc", got.Auth)

	// Поля expiration и expiration_ttl отсутствуют в теле как ключи
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.Body), &body))
	assert.NotContains(t, body, "expiration")
	assert.NotContains(t, body, "expiration_ttl")
	assert.Equal(t, float64(6), body["length"])
}

func TestClient_Create_ForeignHostPassesThrough(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.CreateResponse{
			OK:   true,
			Data: &models.CreateData{Short: "other.example.com/xY9"},
		})
	})

	key, err := client.Create(context.Background(), models.CreateRequest{URL: "https://target"})
	require.NoError(t, err)
	assert.Equal(t, "other.example.com/xY9", key)
}

func TestClient_Create_APIError(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.StatusResponse{OK: false, Msg: "invalid url"})
	})

	_, err := client.Create(context.Background(), models.CreateRequest{URL: "nope"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid url", apiErr.Msg)
}

func TestClient_Create_NoSession(t *testing.T) {
	client := emptySessionClient()

	_, err := client.Create(context.Background(), models.CreateRequest{URL: "https://target"})
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClient_Update(t *testing.T) {
	client, _, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.StatusResponse{OK: true})
	})

	err := client.Update(context.Background(), models.UpdateRequest{Short: "xY9", URL: "https://target"})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	got := (*requests)[0]
	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "/api/v1/update", got.Path)
	assert.JSONEq(t, `{"short":"xY9","url":"https://target"}`, got.Body)
}

func TestClient_Update_APIError(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, models.StatusResponse{OK: false, Msg: "link not found"})
	})

	err := client.Update(context.Background(), models.UpdateRequest{Short: "xY9", URL: "https://target"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "link not found", apiErr.Msg)
}

func TestClient_Delete(t *testing.T) {
	client, _, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.StatusResponse{OK: true})
	})

	err := client.Delete(context.Background(), "xY9")
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	got := (*requests)[0]
	assert.Equal(t, http.MethodDelete, got.Method)
	assert.Equal(t, "/api/v1/delete", got.Path)
	assert.Equal(t, "Bearer abc", got.Auth)

	// Тело DELETE-запроса — ровно {"short":"<key>"}
	assert.Equal(t, `{"short":"xY9"}`, got.Body)
}

func TestClient_Delete_TransportError(t *testing.T) {
	client, server, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	err := client.Delete(context.Background(), "xY9")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestStripHostPrefix(t *testing.T) {
	tests := []struct {
		name     string
		short    string
		baseURL  string
		expected string
	}{
		{"https host stripped", "l.example.com/xY9", "https://l.example.com", "xY9"},
		{"http host stripped", "l.example.com/xY9", "http://l.example.com", "xY9"},
		{"bare key unchanged", "xY9", "https://l.example.com", "xY9"},
		{"foreign host passes through", "other.example.com/xY9", "https://l.example.com", "other.example.com/xY9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripHostPrefix(tt.short, tt.baseURL))
		})
	}
}
