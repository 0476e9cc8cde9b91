package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken — токен не сохранён.
var ErrNoToken = errors.New("not logged in")

// TokenSource — источник текущего токена (repo.TokenStore).
type TokenSource interface {
	Get(ctx context.Context) (string, bool, error)
}

// Claims — данные, извлечённые из токена без проверки подписи.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time // нулевое значение — срок не указан
}

type tokenClaims struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// ParseClaims декодирует payload JWT. Подпись не проверяется: срок действия
// на клиенте носит справочный характер, решение принимает сервер.
func ParseClaims(token string) (*Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return nil, err
	}
	c := &Claims{Subject: tc.Subject, Email: tc.Email}
	if c.Subject == "" {
		c.Subject = tc.UserID
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}

// IsAuthenticated сообщает, сохранён ли токен.
func IsAuthenticated(ctx context.Context, src TokenSource) (bool, error) {
	_, ok, err := src.Get(ctx)
	return ok, err
}

// IsTokenValid — токен есть, декодируется и не истёк к моменту now.
// Токен без exp считается недействительным.
func IsTokenValid(ctx context.Context, src TokenSource, now time.Time) (bool, error) {
	tok, ok, err := src.Get(ctx)
	if err != nil || !ok {
		return false, err
	}
	c, err := ParseClaims(tok)
	if err != nil {
		return false, nil
	}
	if c.ExpiresAt.IsZero() {
		return false, nil
	}
	return c.ExpiresAt.After(now), nil
}
