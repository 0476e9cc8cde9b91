package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Заголовки, которые выставляет клиент.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderRequestID     = "X-Request-ID"

	contentTypeJSON = "application/json"
)

// CredentialStore — хранилище bearer-токена, которым пользуется клиент.
// repo.TokenStore реализует этот интерфейс.
type CredentialStore interface {
	Get(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// RequestOptions описывает исходящий запрос.
type RequestOptions struct {
	Method  string
	Body    any         // сериализуется в JSON, если не nil
	Headers http.Header // перекрывают заголовки по умолчанию, кроме Authorization
	// SkipAuth отключает подстановку токена (login/register).
	SkipAuth bool
}

// Client — единая точка выхода всех запросов к API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  CredentialStore
	log     *zap.SugaredLogger
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (в тестах и для своих транспортов).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger задаёт логгер клиента.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) { c.log = l }
}

// New создаёт клиент для baseURL. baseURL фиксируется на всё время жизни клиента.
func New(baseURL string, tokens CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = &http.Client{Transport: NewLoggingTransport(http.DefaultTransport, c.log)}
	}
	return c
}

// BaseURL возвращает адрес API, с которым работает клиент.
func (c *Client) BaseURL() string { return c.baseURL }

// Auth возвращает обёртки эндпоинтов /auth.
func (c *Client) Auth() *AuthAPI { return &AuthAPI{c: c} }

// Payments возвращает обёртки эндпоинтов /payments.
func (c *Client) Payments() *PaymentsAPI { return &PaymentsAPI{c: c} }

// Request выполняет запрос к path (относительно baseURL) и декодирует JSON-ответ в out.
// out == nil — тело успешного ответа не разбирается.
//
// Ошибки: *StorageError (чтение токена), *NetworkError (запрос не дошёл до сервера),
// *APIError (не-2xx), *ParseError (битый JSON в 2xx). Обрыв тела ответа возвращается
// обёрнутой ошибкой чтения. Повторов нет.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions, out any) error {
	req, err := c.newRequest(ctx, path, opts)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &NetworkError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// сервер уже ответил: это не NetworkError
		return fmt.Errorf("read response body (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Body:       strings.TrimSpace(string(body)),
		}
		c.log.Debugw("api error response",
			"method", req.Method,
			"path", path,
			"status", resp.StatusCode,
			"body", apiErr.Body,
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{Status: resp.StatusCode, Body: string(body), Err: err}
	}
	return nil
}

// newRequest собирает http.Request: URL, тело, заголовки и токен, прочитанный в момент сборки.
func (c *Client) newRequest(ctx context.Context, path string, opts RequestOptions) (*http.Request, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set(HeaderContentType, contentTypeJSON)
	req.Header.Set(HeaderAccept, contentTypeJSON)
	req.Header.Set(HeaderRequestID, uuid.NewString())
	for k, vals := range opts.Headers {
		if http.CanonicalHeaderKey(k) == HeaderAuthorization {
			// Authorization выставляет только клиент
			continue
		}
		req.Header.Del(k)
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	if !opts.SkipAuth && c.tokens != nil {
		token, ok, err := c.tokens.Get(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			req.Header.Set(HeaderAuthorization, "Bearer "+token)
		}
	}
	return req, nil
}

// statusText — текстовая часть статуса ответа ("Unauthorized" для "401 Unauthorized").
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// IsUnauthorized сообщает, что сервер отклонил запрос из-за авторизации.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden)
}
