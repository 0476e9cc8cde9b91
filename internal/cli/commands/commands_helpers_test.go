package commands

import (
	"bytes"
	"testing"

	"PayTrack/internal/cli/api/apitest"
	"PayTrack/internal/config"
)

// newTestConfig направляет клиент на фейковый бэкенд, а хранилище токена — во временный каталог.
func newTestConfig(t *testing.T, b *apitest.Backend) *config.Config {
	t.Helper()
	return &config.Config{
		APIURL:         b.URL(),
		SecureStore:    config.StoreFile,
		SecureStoreDir: t.TempDir(),
		LogLevel:       "warn",
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}
