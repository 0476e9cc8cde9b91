package model

import "encoding/json"

// RegisterRequest — тело /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest — тело /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse — ответ login/register. Остальные поля ответа доступны в Raw.
type AuthResponse struct {
	AccessToken string          `json:"access_token,omitempty"`
	User        json.RawMessage `json:"user,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

// UnmarshalJSON сохраняет исходный ответ целиком.
func (r *AuthResponse) UnmarshalJSON(b []byte) error {
	type plain AuthResponse
	if err := json.Unmarshal(b, (*plain)(r)); err != nil {
		return err
	}
	r.Raw = append(r.Raw[:0], b...)
	return nil
}
