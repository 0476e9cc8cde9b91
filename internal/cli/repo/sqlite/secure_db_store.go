package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"PayTrack/internal/cli/crypto"
	"PayTrack/internal/cli/repo"
)

// dbFileName — файл клиентской БД внутри каталога хранилища.
const dbFileName = "secure.sqlite"

// SecureItem — строка таблицы secure_items. Value хранится только в зашифрованном виде.
type SecureItem struct {
	Key       string `gorm:"primaryKey;column:item_key"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// SecureDBStore — защищённое хранилище поверх SQLite (modernc, без cgo).
type SecureDBStore struct {
	db  *gorm.DB
	key []byte
}

var _ repo.SecureStore = (*SecureDBStore)(nil)

// Open открывает (и создаёт при необходимости) БД в каталоге dir и выполняет миграции.
func Open(dir string) (*SecureDBStore, error) {
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
	return OpenDSN(filepath.Join(dir, dbFileName), key)
}

// OpenDSN открывает хранилище по произвольному DSN (в тестах — in-memory).
func OpenDSN(dsn string, key []byte) (*SecureDBStore, error) {
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open secure db: %w", err)
	}
	if err := db.AutoMigrate(&SecureItem{}); err != nil {
		return nil, fmt.Errorf("migrate secure db: %w", err)
	}
	return &SecureDBStore{db: db, key: key}, nil
}

// Close закрывает соединение с БД.
func (s *SecureDBStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SetItem шифрует значение и делает upsert по ключу.
func (s *SecureDBStore) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("empty key")
	}
	sealed, err := crypto.Seal(s.key, []byte(value), []byte(key))
	if err != nil {
		return err
	}
	item := SecureItem{Key: key, Value: sealed, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&item).Error
}

// GetItem читает и расшифровывает значение.
func (s *SecureDBStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var item SecureItem
	err := s.db.WithContext(ctx).Where("item_key = ?", key).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	plain, err := crypto.Open(s.key, item.Value, []byte(key))
	if err != nil {
		return "", false, fmt.Errorf("decrypt %q: %w", key, err)
	}
	return string(plain), true, nil
}

// DeleteItem удаляет строку; отсутствие строки ошибкой не считается.
func (s *SecureDBStore) DeleteItem(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("item_key = ?", key).Delete(&SecureItem{}).Error
}
