package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

// keyFileName — имя файла ключа внутри каталога защищённого хранилища.
const keyFileName = "store.key"

// ErrInvalidKey возвращается, если файл ключа повреждён.
var ErrInvalidKey = errors.New("invalid key length")

// KeyFilePath возвращает путь к файлу ключа в каталоге dir.
func KeyFilePath(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("empty directory for key path")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, keyFileName), nil
}

// LoadOrCreateKey загружает ключ хранилища или создаёт новый случайный.
func LoadOrCreateKey(dir string) ([]byte, error) {
	path, err := KeyFilePath(dir)
	if err != nil {
		return nil, err
	}
	if b, err := os.ReadFile(path); err == nil {
		if len(b) != chacha20poly1305.KeySize {
			return nil, ErrInvalidKey
		}
		return b, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	// записываем с ограниченными правами доступа
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}

// Seal шифрует plain с помощью XChaCha20-Poly1305.
// Результат: nonce || ciphertext. additional привязывает шифртекст к ключу записи.
func Seal(key, plain, additional []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plain)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plain, additional), nil
}

// Open расшифровывает данные, полученные из Seal.
func Open(key, sealed, additional []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("sealed data too short: %d bytes", len(sealed))
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, additional)
}
