package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"PayTrack/internal/cli/crypto"
	"PayTrack/internal/cli/repo"
)

// SecureFileStore — файловое защищённое хранилище: один зашифрованный файл на ключ.
type SecureFileStore struct {
	dir string
	key []byte
}

var _ repo.SecureStore = (*SecureFileStore)(nil)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// NewSecureFileStore открывает хранилище в каталоге dir, создавая каталог и ключ при необходимости.
func NewSecureFileStore(dir string) (*SecureFileStore, error) {
	if dir == "" {
		return nil, errors.New("empty secure store directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	key, err := crypto.LoadOrCreateKey(dir)
	if err != nil {
		return nil, fmt.Errorf("load store key: %w", err)
	}
	return &SecureFileStore{dir: dir, key: key}, nil
}

func (s *SecureFileStore) itemPath(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", fmt.Errorf("invalid key: %q (allowed: letters, digits, . _ -)", key)
	}
	return filepath.Join(s.dir, key+".sealed"), nil
}

// SetItem шифрует и записывает значение. Запись идёт через временный файл и rename.
func (s *SecureFileStore) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.itemPath(key)
	if err != nil {
		return err
	}
	sealed, err := crypto.Seal(s.key, []byte(value), []byte(key))
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// GetItem читает и расшифровывает значение.
func (s *SecureFileStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	p, err := s.itemPath(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	plain, err := crypto.Open(s.key, b, []byte(key))
	if err != nil {
		return "", false, fmt.Errorf("decrypt %q: %w", key, err)
	}
	return string(plain), true, nil
}

// DeleteItem удаляет файл значения; отсутствие файла не ошибка.
func (s *SecureFileStore) DeleteItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.itemPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
