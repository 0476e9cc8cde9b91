package api

import (
	"context"
	"errors"
	"net/http"

	"PayTrack/internal/cli/model"
)

// AuthAPI — эндпоинты /auth.
type AuthAPI struct {
	c *Client
}

// Register регистрирует пользователя. Если сервер вернул access_token, он сохраняется
// в хранилище до возврата ответа.
func (a *AuthAPI) Register(ctx context.Context, email, password, name string) (*model.AuthResponse, error) {
	body := model.RegisterRequest{Email: email, Password: password, Name: name}
	return a.authenticate(ctx, "/auth/register", body)
}

// Login выполняет вход и сохраняет access_token из ответа.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	body := model.LoginRequest{Email: email, Password: password}
	return a.authenticate(ctx, "/auth/login", body)
}

func (a *AuthAPI) authenticate(ctx context.Context, path string, body any) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := a.c.Request(ctx, path, RequestOptions{
		Method:   http.MethodPost,
		Body:     body,
		SkipAuth: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken != "" && a.c.tokens != nil {
		if err := a.c.tokens.Save(ctx, resp.AccessToken); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// Logout сообщает серверу о выходе и удаляет локальный токен независимо от ответа сервера.
// Возвращает объединение ошибки сервера и ошибки хранилища.
func (a *AuthAPI) Logout(ctx context.Context) error {
	serverErr := a.c.Request(ctx, "/auth/logout", RequestOptions{Method: http.MethodPost}, nil)
	if serverErr != nil {
		a.c.log.Debugw("server logout failed, clearing local credential anyway", "error", serverErr)
	}
	if a.c.tokens == nil {
		return serverErr
	}
	// удаление не должно зависеть от отмены контекста запроса к серверу
	removeErr := a.c.tokens.Remove(context.WithoutCancel(ctx))
	return errors.Join(serverErr, removeErr)
}
