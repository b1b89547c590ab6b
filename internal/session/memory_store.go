package session

import "sync"

// MemoryStore реализует интерфейс Store в памяти. Используется в тестах.
type MemoryStore struct {
	store map[string]string
	mutex sync.Mutex
}

// NewMemoryStore создаёт новый экземпляр MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{store: make(map[string]string)}
}

// Read возвращает сохранённую пару учётных данных,
// очищая хранилище при неполной записи
func (s *MemoryStore) Read() (Credentials, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	url, token := s.store[KeyBackendURL], s.store[KeyToken]
	if url == "" || token == "" {
		s.store = make(map[string]string)
		return Credentials{}, false
	}
	return Credentials{BackendURL: url, Token: token}, true
}

// Write сохраняет оба значения
func (s *MemoryStore) Write(creds Credentials) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.store[KeyBackendURL] = creds.BackendURL
	s.store[KeyToken] = creds.Token
	return nil
}

// Clear удаляет все сохранённые значения
func (s *MemoryStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.store = make(map[string]string)
	return nil
}

// Set записывает одно значение в обход инварианта пары. Используется в тестах
// для проверки поведения при частично сохранённой сессии.
func (s *MemoryStore) Set(key, value string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.store[key] = value
}

// Len возвращает число сохранённых ключей
func (s *MemoryStore) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.store)
}
