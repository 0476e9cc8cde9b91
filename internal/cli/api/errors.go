package api

import (
	"fmt"
	"net/http"
	"strings"

	"PayTrack/internal/cli/repo"
)

// StorageError — сбой защищённого хранилища токена (см. repo.StorageError).
type StorageError = repo.StorageError

// NetworkError — запрос не дошёл до сервера (отказ соединения, DNS, таймаут до ответа).
type NetworkError struct {
	BaseURL string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network connection failed: check your internet connection and ensure the server is running at %s: %v", e.BaseURL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError — сервер ответил статусом вне диапазона 2xx.
type APIError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	text := e.StatusText
	if text == "" {
		text = http.StatusText(e.Status)
	}
	return strings.TrimSpace(fmt.Sprintf("HTTP %d %s", e.Status, text))
}

// ParseError — успешный ответ с телом, которое не удалось разобрать как JSON.
type ParseError struct {
	Status int
	Body   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response (status %d): %v", e.Status, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
