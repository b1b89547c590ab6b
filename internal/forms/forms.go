// Package forms содержит общие правила разбора полей форм создания и редактирования ссылок.
package forms

import (
	"fmt"
	"strconv"
	"time"
)

// ExpirationLayout — формат абсолютного времени истечения ссылки: YYYY-MM-DD HH:MM:SS ±ZZZZ
const ExpirationLayout = "2006-01-02 15:04:05 -0700"

// ParseLength разбирает поле length. Пустая строка означает отсутствие значения,
// ноль — допустимое значение, которое передаётся бэкенду как есть.
func ParseLength(raw string) (*uint16, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("Invalid length %v", err)
	}
	v := uint16(n)
	return &v, nil
}

// ParseExpiration разбирает поле expiration в unix-секунды.
// Пустая строка означает отсутствие значения.
func ParseExpiration(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(ExpirationLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("Invalid expiration date format, %v", err)
	}
	ts := t.Unix()
	return &ts, nil
}

// FormatExpiration форматирует unix-секунды обратно в формат поля expiration
func FormatExpiration(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(ExpirationLayout)
}

// ParseExpirationTTL разбирает поле expirationTtl как беззнаковое 32-битное число секунд
func ParseExpirationTTL(raw string) (*uint32, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("Invalid expirationTTL, %v", err)
	}
	v := uint32(n)
	return &v, nil
}

// ParseCheckbox разбирает значение чекбокса. Значение, не разбирающееся
// как булево, считается отсутствующим: бэкенд применит собственное значение по умолчанию.
func ParseCheckbox(raw string) *bool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
