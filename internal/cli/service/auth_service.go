package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"PayTrack/internal/cli/auth"
	"PayTrack/internal/cli/model"
	"PayTrack/internal/cli/repo"
)

// AuthGateway — эндпоинты аутентификации (api.AuthAPI).
type AuthGateway interface {
	Register(ctx context.Context, email, password, name string) (*model.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Logout(ctx context.Context) error
}

// ServerLogoutError — сервер не подтвердил выход, но локальный токен удалён.
type ServerLogoutError struct {
	Err error
}

func (e *ServerLogoutError) Error() string {
	return fmt.Sprintf("server logout failed (local credential removed): %v", e.Err)
}

func (e *ServerLogoutError) Unwrap() error { return e.Err }

// SessionStatus — состояние локальной сессии.
type SessionStatus struct {
	Authenticated bool
	Valid         bool // срок действия токена не истёк (без проверки подписи)
	Subject       string
	Email         string
	ExpiresAt     time.Time
}

// AuthService — юзкейс-уровень аутентификации для CLI.
type AuthService struct {
	gw     AuthGateway
	tokens auth.TokenSource
	log    *zap.SugaredLogger
	now    func() time.Time
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(gw AuthGateway, tokens auth.TokenSource, log *zap.SugaredLogger) *AuthService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AuthService{gw: gw, tokens: tokens, log: log, now: time.Now}
}

// Register регистрирует пользователя; токен из ответа сохраняет шлюз.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*model.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	resp, err := s.gw.Register(ctx, email, password, name)
	if err != nil {
		s.log.Debugw("register failed", "email", email, "error", err)
		return nil, err
	}
	return resp, nil
}

// Login выполняет вход.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	resp, err := s.gw.Login(ctx, email, password)
	if err != nil {
		s.log.Debugw("login failed", "email", email, "error", err)
		return nil, err
	}
	return resp, nil
}

// Logout завершает сессию. Если не удалось только серверное уведомление,
// возвращается *ServerLogoutError: локально пользователь уже разлогинен.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.gw.Logout(ctx)
	if err == nil {
		return nil
	}
	var se *repo.StorageError
	if errors.As(err, &se) {
		return err
	}
	return &ServerLogoutError{Err: err}
}

// Status читает токен и декодирует его claims.
func (s *AuthService) Status(ctx context.Context) (*SessionStatus, error) {
	tok, ok, err := s.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}
	st := &SessionStatus{Authenticated: ok}
	if !ok {
		return st, nil
	}
	claims, err := auth.ParseClaims(tok)
	if err != nil {
		// непрозрачный токен — валидность может подтвердить только сервер
		s.log.Debugw("token is not a decodable JWT", "error", err)
		return st, nil
	}
	st.Subject = claims.Subject
	st.Email = claims.Email
	st.ExpiresAt = claims.ExpiresAt
	st.Valid = !claims.ExpiresAt.IsZero() && claims.ExpiresAt.After(s.now())
	return st, nil
}
