package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PayTrack/internal/cli/api/apitest"
	"PayTrack/internal/cli/bootstrap"
	"PayTrack/internal/config"
)

func storedToken(t *testing.T, cfg *config.Config) (string, bool) {
	t.Helper()
	app, err := bootstrap.Open(cfg, nil)
	require.NoError(t, err)
	defer app.Close()
	tok, ok, err := app.Tokens.Get(context.Background())
	require.NoError(t, err)
	return tok, ok
}

func TestLogin_Run_SuccessAndErrors(t *testing.T) {
	b := apitest.NewBackend(t)
	b.AddUser("alice@example.com", "secret", "Alice")
	cfg := newTestConfig(t, b)
	ctx := context.Background()

	out := withStdoutCapture(t, func() {
		require.NoError(t, loginCmd{}.Run(ctx, cfg, []string{"alice@example.com", "secret"}))
	})
	assert.Contains(t, out, "Logged in successfully")
	tok, ok := storedToken(t, cfg)
	assert.True(t, ok)
	assert.NotEmpty(t, tok)

	// неверный пароль
	err := loginCmd{}.Run(ctx, newTestConfig(t, b), []string{"alice@example.com", "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")

	assert.ErrorIs(t, loginCmd{}.Run(ctx, cfg, []string{"only-email"}), ErrUsage)
}

func TestLogin_Run_ServerUnreachable(t *testing.T) {
	b := apitest.NewBackend(t)
	cfg := newTestConfig(t, b)
	b.Server.Close()

	err := loginCmd{}.Run(context.Background(), cfg, []string{"a@b.c", "pw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network connection failed")
	assert.Contains(t, err.Error(), cfg.APIURL)
}

func TestRegister_Run_SuccessAndConflict(t *testing.T) {
	b := apitest.NewBackend(t)
	cfg := newTestConfig(t, b)
	ctx := context.Background()

	out := withStdoutCapture(t, func() {
		require.NoError(t, registerCmd{}.Run(ctx, cfg, []string{"bob@example.com", "pwd", "Bob", "Smith"}))
	})
	assert.Contains(t, out, "Registered and logged in")
	_, ok := storedToken(t, cfg)
	assert.True(t, ok)

	err := registerCmd{}.Run(ctx, cfg, []string{"bob@example.com", "pwd", "Bob"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")

	assert.ErrorIs(t, registerCmd{}.Run(ctx, cfg, []string{"bob@example.com", "pwd"}), ErrUsage)
}

func TestLogout_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("server ok", func(t *testing.T) {
		b := apitest.NewBackend(t)
		b.AddUser("a@b.c", "pw", "A")
		cfg := newTestConfig(t, b)
		withStdoutCapture(t, func() { require.NoError(t, loginCmd{}.Run(ctx, cfg, []string{"a@b.c", "pw"})) })

		out := withStdoutCapture(t, func() { require.NoError(t, logoutCmd{}.Run(ctx, cfg, nil)) })
		assert.Contains(t, out, "Logged out")
		_, ok := storedToken(t, cfg)
		assert.False(t, ok)
	})

	t.Run("server failure still clears token", func(t *testing.T) {
		b := apitest.NewBackend(t)
		b.AddUser("a@b.c", "pw", "A")
		b.FailLogout = true
		cfg := newTestConfig(t, b)
		withStdoutCapture(t, func() { require.NoError(t, loginCmd{}.Run(ctx, cfg, []string{"a@b.c", "pw"})) })

		out := withStdoutCapture(t, func() { require.NoError(t, logoutCmd{}.Run(ctx, cfg, nil)) })
		assert.Contains(t, out, "Logged out locally")
		_, ok := storedToken(t, cfg)
		assert.False(t, ok)
	})

	assert.ErrorIs(t, logoutCmd{}.Run(ctx, &config.Config{}, []string{"extra"}), ErrUsage)
}

func TestStatus_Run(t *testing.T) {
	b := apitest.NewBackend(t)
	b.AddUser("a@b.c", "pw", "A")
	cfg := newTestConfig(t, b)
	ctx := context.Background()

	out := withStdoutCapture(t, func() { require.NoError(t, statusCmd{}.Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "not logged in")

	withStdoutCapture(t, func() { require.NoError(t, loginCmd{}.Run(ctx, cfg, []string{"a@b.c", "pw"})) })
	out = withStdoutCapture(t, func() { require.NoError(t, statusCmd{}.Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "User: a@b.c")
	assert.Contains(t, out, "logged in, token expires")

	assert.ErrorIs(t, statusCmd{}.Run(ctx, cfg, []string{"extra"}), ErrUsage)
}

func TestStatus_Run_SQLiteStore(t *testing.T) {
	b := apitest.NewBackend(t)
	b.AddUser("a@b.c", "pw", "A")
	cfg := newTestConfig(t, b)
	cfg.SecureStore = config.StoreSQLite
	ctx := context.Background()

	withStdoutCapture(t, func() { require.NoError(t, loginCmd{}.Run(ctx, cfg, []string{"a@b.c", "pw"})) })
	out := withStdoutCapture(t, func() { require.NoError(t, statusCmd{}.Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "logged in")
}
