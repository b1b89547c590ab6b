package session

// Ключи постоянного хранилища учётных данных
const (
	KeyBackendURL = "backendUrl"
	KeyToken      = "token"
)

// Credentials содержит сохранённые учётные данные сессии
type Credentials struct {
	BackendURL string
	Token      string
}

// Store определяет интерфейс постоянного хранилища учётных данных.
// Инвариант: либо сохранены оба значения, либо сессия отсутствует.
type Store interface {
	// Read возвращает пару (URL бэкенда, токен), если сохранены оба значения.
	// Если найдено ровно одно из них, хранилище очищается и сессия считается отсутствующей.
	Read() (Credentials, bool)
	// Write сохраняет оба значения
	Write(creds Credentials) error
	// Clear удаляет все сохранённые значения
	Clear() error
}
