package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore реализует интерфейс Store с использованием JSON-файла.
// Файл перечитывается на каждом Read: кэширования в памяти нет,
// каждая операция видит актуальное состояние хранилища.
type FileStore struct {
	filePath string
	logger   *zap.Logger
	mutex    sync.Mutex
}

// NewFileStore создаёт новый экземпляр FileStore
func NewFileStore(filePath string, logger *zap.Logger) (*FileStore, error) {
	// Создаём директорию, если не существует
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{filePath: filePath, logger: logger}, nil
}

// Read возвращает сохранённую пару учётных данных.
// Неполная или повреждённая запись очищается, сессия считается отсутствующей.
func (s *FileStore) Read() (Credentials, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read session file", zap.Error(err))
			s.clearLocked()
		}
		return Credentials{}, false
	}

	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		s.logger.Warn("Session file is corrupted, clearing", zap.Error(err))
		s.clearLocked()
		return Credentials{}, false
	}

	url, token := kv[KeyBackendURL], kv[KeyToken]
	if url == "" || token == "" {
		// Сохранена только половина пары: очищаем и просим войти заново
		s.clearLocked()
		return Credentials{}, false
	}
	return Credentials{BackendURL: url, Token: token}, true
}

// Write сохраняет оба значения в файл
func (s *FileStore) Write(creds Credentials) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := json.Marshal(map[string]string{
		KeyBackendURL: creds.BackendURL,
		KeyToken:      creds.Token,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Clear удаляет файл с учётными данными
func (s *FileStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.clearLocked()
}

func (s *FileStore) clearLocked() error {
	err := os.Remove(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
