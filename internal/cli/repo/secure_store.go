package repo

import (
	"context"
	"fmt"
)

// SecureStore описывает зашифрованное key-value хранилище небольших секретов на клиенте.
type SecureStore interface {
	// SetItem перезаписывает значение по ключу.
	SetItem(ctx context.Context, key, value string) error
	// GetItem возвращает значение; ok=false, если ключ не задан.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	// DeleteItem удаляет значение. Отсутствие ключа ошибкой не считается.
	DeleteItem(ctx context.Context, key string) error
}

// StorageError — сбой ввода-вывода защищённого хранилища.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("secure storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// wrapStorage оборачивает ошибку бэкенда, не трогая уже обёрнутые.
func wrapStorage(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StorageError); ok {
		return se
	}
	return &StorageError{Op: op, Key: key, Err: err}
}
