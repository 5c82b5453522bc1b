// Package postgres реализует хранилище сохранений в PostgreSQL:
// одна таблица ключ/значение, по строке на ключ.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX определяет минимальный интерфейс соединения с базой,
// совместимый с pgxpool.Pool и pgxmock
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store реализует saves.Store поверх таблицы save_entries
type Store struct {
	db DBTX
}

// New создает новое хранилище поверх соединения db
func New(db DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx,
		`SELECT value FROM save_entries WHERE key = $1`,
		key,
	).Scan(&value)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("saves postgres: failed to get %q: %w", key, err)
	}

	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO save_entries (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)

	if err != nil {
		return fmt.Errorf("saves postgres: failed to set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM save_entries WHERE key = $1`,
		key,
	)

	if err != nil {
		return fmt.Errorf("saves postgres: failed to delete %q: %w", key, err)
	}
	return nil
}

// Close не закрывает соединение: пулом владеет приложение
func (s *Store) Close() error {
	return nil
}
