package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"PayTrack/internal/cli/api"
	"PayTrack/internal/cli/repo"
	fsrepo "PayTrack/internal/cli/repo/fs"
	reposqlite "PayTrack/internal/cli/repo/sqlite"
	"PayTrack/internal/cli/service"
	"PayTrack/internal/config"
)

// App — собранные зависимости CLI на время одной команды.
type App struct {
	Client   *api.Client
	Tokens   *repo.TokenStore
	Auth     *service.AuthService
	Payments *service.PaymentService

	closeFn func() error
}

// OpenSecureStore открывает защищённое хранилище, выбранное в конфигурации.
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenSecureStore(cfg *config.Config) (repo.SecureStore, func() error, error) {
	switch cfg.SecureStore {
	case config.StoreSQLite:
		s, err := reposqlite.Open(cfg.SecureStoreDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite secure store: %w", err)
		}
		return s, s.Close, nil
	case config.StoreFile, "":
		s, err := fsrepo.NewSecureFileStore(cfg.SecureStoreDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file secure store: %w", err)
		}
		return s, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown secure store %q", cfg.SecureStore)
	}
}

// Open собирает хранилище токена, API-клиент и сервисы.
func Open(cfg *config.Config, log *zap.SugaredLogger) (*App, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	store, cleanup, err := OpenSecureStore(cfg)
	if err != nil {
		return nil, err
	}
	tokens := repo.NewTokenStore(store)
	client := api.New(cfg.APIURL, tokens, api.WithLogger(log.Named("api")))

	return &App{
		Client:   client,
		Tokens:   tokens,
		Auth:     service.NewAuthService(client.Auth(), tokens, log.Named("auth")),
		Payments: service.NewPaymentService(client.Payments(), log.Named("payments")),
		closeFn:  cleanup,
	}, nil
}

// Close освобождает ресурсы хранилища. Повторный вызов безопасен.
func (a *App) Close() error {
	if a == nil || a.closeFn == nil {
		return nil
	}
	fn := a.closeFn
	a.closeFn = nil
	return fn()
}
