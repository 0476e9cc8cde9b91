package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PayTrack/internal/config"
)

func TestOpen_FileStore(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{APIURL: "http://localhost:3000/api/", SecureStore: config.StoreFile, SecureStoreDir: dir}

	app, err := Open(cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "http://localhost:3000/api", app.Client.BaseURL())
	require.NoError(t, app.Tokens.Save(context.Background(), "tok"))
	_, err = os.Stat(filepath.Join(dir, "jwt.sealed"))
	assert.NoError(t, err)
}

func TestOpen_SQLiteStoreAndCleanup(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{APIURL: config.DefaultAPIURL, SecureStore: config.StoreSQLite, SecureStoreDir: dir}

	app, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, app.Tokens.Save(context.Background(), "tok"))
	tok, ok, err := app.Tokens.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)

	assert.NoError(t, app.Close())
	// повторный вызов Close не должен падать
	assert.NoError(t, app.Close())

	_, err = os.Stat(filepath.Join(dir, "secure.sqlite"))
	assert.NoError(t, err)
}

func TestOpenSecureStore_Errors(t *testing.T) {
	_, _, err := OpenSecureStore(&config.Config{SecureStore: "keychain", SecureStoreDir: t.TempDir()})
	assert.Error(t, err)

	// каталог хранилища указывает на обычный файл
	file := filepath.Join(t.TempDir(), "not_dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	_, _, err = OpenSecureStore(&config.Config{SecureStore: config.StoreFile, SecureStoreDir: file})
	assert.Error(t, err)
}
