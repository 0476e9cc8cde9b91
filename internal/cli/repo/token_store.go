package repo

import "context"

// TokenKey — фиксированный ключ, под которым хранится bearer-токен.
const TokenKey = "jwt"

// TokenStore хранит единственный bearer-токен клиента.
// Кэша в памяти нет: каждый вызов идёт в SecureStore.
// Конкурентные Save/Remove не синхронизируются, побеждает последний.
type TokenStore struct {
	store SecureStore
}

// NewTokenStore создаёт хранилище токена поверх SecureStore.
func NewTokenStore(s SecureStore) *TokenStore {
	return &TokenStore{store: s}
}

// Save перезаписывает текущий токен.
func (t *TokenStore) Save(ctx context.Context, token string) error {
	return wrapStorage("save", TokenKey, t.store.SetItem(ctx, TokenKey, token))
}

// Get возвращает текущий токен; ok=false, если токена нет.
func (t *TokenStore) Get(ctx context.Context) (string, bool, error) {
	tok, ok, err := t.store.GetItem(ctx, TokenKey)
	if err != nil {
		return "", false, wrapStorage("get", TokenKey, err)
	}
	if !ok || tok == "" {
		return "", false, nil
	}
	return tok, true, nil
}

// Remove удаляет токен; повторное удаление не является ошибкой.
func (t *TokenStore) Remove(ctx context.Context) error {
	return wrapStorage("remove", TokenKey, t.store.DeleteItem(ctx, TokenKey))
}
