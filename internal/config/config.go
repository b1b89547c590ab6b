package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Config содержит настройки приложения
type Config struct {
	RunAddr     string `env:"RUN_ADDRESS" envDefault:":8080"`
	SessionPath string `env:"SESSION_FILE_PATH"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// NewConfig создаёт новый объект Config: сначала читает переменные окружения,
// затем применяет флаги командной строки, которые имеют приоритет
func NewConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	flagRunAddr := flag.String("a", "", "address and port to run the admin UI")
	flagSessionPath := flag.String("f", "", "path to the session credentials file")
	flagLogLevel := flag.String("l", "", "log level")
	flag.Parse()

	if *flagRunAddr != "" {
		cfg.RunAddr = *flagRunAddr
	}
	if *flagSessionPath != "" {
		cfg.SessionPath = *flagSessionPath
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}

	cfg.RunAddr = validateAddress(cfg.RunAddr)
	if cfg.SessionPath == "" {
		cfg.SessionPath = defaultSessionPath()
	}
	return &cfg, nil
}

// validateAddress дополняет адрес двоеточием, если указан только порт
func validateAddress(addr string) string {
	if !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

// defaultSessionPath возвращает путь к файлу сессии в конфигурационной
// директории пользователя
func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "session.json")
	}
	return filepath.Join(dir, "linkrusk-admin", "session.json")
}
