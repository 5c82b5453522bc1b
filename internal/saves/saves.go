// Package saves определяет хранилище сохранений игры: плоские
// строковые ключи со скалярными значениями и JSON-блобами,
// аналог пользовательских настроек движка.
package saves

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Ключи сохраняемого состояния
const (
	KeyReputationPercent = "reputation_percent"
	KeyStockSnapshot     = "stock_snapshot"
	KeyMoneyBalance      = "money_balance"
	KeyCraftedGarments   = "crafted_garments"
	KeyTutorialSeen      = "tutorial_seen"
	KeyPrepLocked        = "prep_locked"
)

// Store определяет методы хранилища сохранений.
// Get возвращает ok=false для отсутствующего ключа без ошибки.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetInt читает целое значение; отсутствующий ключ дает значение по умолчанию
func GetInt(ctx context.Context, s Store, key string, def int) (int, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("saves: failed to get %q: %w", key, err)
	}
	if !ok {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("saves: malformed int at %q: %w", key, err)
	}
	return v, nil
}

// SetInt записывает целое значение
func SetInt(ctx context.Context, s Store, key string, v int) error {
	return s.Set(ctx, key, strconv.Itoa(v))
}

// GetFloat читает вещественное значение; отсутствующий ключ дает значение по умолчанию
func GetFloat(ctx context.Context, s Store, key string, def float64) (float64, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("saves: failed to get %q: %w", key, err)
	}
	if !ok {
		return def, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, fmt.Errorf("saves: malformed float at %q: %w", key, err)
	}
	return v, nil
}

// SetFloat записывает вещественное значение
func SetFloat(ctx context.Context, s Store, key string, v float64) error {
	return s.Set(ctx, key, strconv.FormatFloat(v, 'f', -1, 64))
}

// GetBool читает булев флаг; отсутствующий ключ дает значение по умолчанию
func GetBool(ctx context.Context, s Store, key string, def bool) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("saves: failed to get %q: %w", key, err)
	}
	if !ok {
		return def, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("saves: malformed bool at %q: %w", key, err)
	}
	return v, nil
}

// SetBool записывает булев флаг
func SetBool(ctx context.Context, s Store, key string, v bool) error {
	return s.Set(ctx, key, strconv.FormatBool(v))
}

// GetJSON декодирует JSON-блоб в out; возвращает false для отсутствующего ключа
func GetJSON(ctx context.Context, s Store, key string, out any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("saves: failed to get %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("saves: malformed json at %q: %w", key, err)
	}
	return true, nil
}

// SetJSON кодирует значение в JSON-блоб и записывает его
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("saves: failed to marshal %q: %w", key, err)
	}
	return s.Set(ctx, key, string(payload))
}
