package api

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PayTrack/internal/cli/repo"
)

// memTokens — простое хранилище токена в памяти для тестов.
type memTokens struct {
	token string
	set   bool
	err   error
}

func (m *memTokens) Get(context.Context) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	return m.token, m.set, nil
}

func (m *memTokens) Save(_ context.Context, token string) error {
	if m.err != nil {
		return m.err
	}
	m.token, m.set = token, true
	return nil
}

func (m *memTokens) Remove(context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.token, m.set = "", false
	return nil
}

var _ CredentialStore = (*memTokens)(nil)

// echoServer отвечает 200 и {"ok":true}, запоминая последний запрос.
func echoServer(t *testing.T, last **http.Request) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*last = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestRequest_AttachesBearerWhenTokenPresent(t *testing.T) {
	var last *http.Request
	ts := echoServer(t, &last)
	c := New(ts.URL, &memTokens{token: "tok123", set: true})

	var out map[string]bool
	require.NoError(t, c.Request(context.Background(), "/payments", RequestOptions{}, &out))
	assert.True(t, out["ok"])
	assert.Equal(t, "Bearer tok123", last.Header.Get("Authorization"))
	assert.Equal(t, "application/json", last.Header.Get("Content-Type"))
	assert.NotEmpty(t, last.Header.Get(HeaderRequestID))
	assert.Equal(t, http.MethodGet, last.Method)
}

func TestRequest_SkipAuthNeverSendsToken(t *testing.T) {
	var last *http.Request
	ts := echoServer(t, &last)
	c := New(ts.URL, &memTokens{token: "stale", set: true})

	require.NoError(t, c.Request(context.Background(), "/auth/login", RequestOptions{Method: http.MethodPost, SkipAuth: true}, nil))
	assert.Empty(t, last.Header.Get("Authorization"))
}

func TestRequest_NoTokenNoHeader(t *testing.T) {
	var last *http.Request
	ts := echoServer(t, &last)
	c := New(ts.URL, &memTokens{})

	require.NoError(t, c.Request(context.Background(), "/payments", RequestOptions{}, nil))
	assert.Empty(t, last.Header.Get("Authorization"))
}

func TestRequest_CallerHeadersOverrideDefaultsButNotAuthorization(t *testing.T) {
	var last *http.Request
	ts := echoServer(t, &last)
	c := New(ts.URL, &memTokens{token: "tok", set: true})

	h := http.Header{}
	h.Set("Content-Type", "application/merge-patch+json")
	h.Set("Authorization", "Bearer forged")
	h.Set("X-Trace", "abc")
	require.NoError(t, c.Request(context.Background(), "payments", RequestOptions{Headers: h}, nil))

	assert.Equal(t, "application/merge-patch+json", last.Header.Get("Content-Type"))
	assert.Equal(t, "abc", last.Header.Get("X-Trace"))
	assert.Equal(t, "Bearer tok", last.Header.Get("Authorization"))
	// path без ведущего слэша дополняется
	assert.Equal(t, "/payments", last.URL.Path)
}

func TestRequest_TokenReadAtBuildTime(t *testing.T) {
	var last *http.Request
	ts := echoServer(t, &last)
	tokens := &memTokens{token: "first", set: true}
	c := New(ts.URL, tokens)

	require.NoError(t, c.Request(context.Background(), "/a", RequestOptions{}, nil))
	assert.Equal(t, "Bearer first", last.Header.Get("Authorization"))

	tokens.token = "second"
	require.NoError(t, c.Request(context.Background(), "/a", RequestOptions{}, nil))
	assert.Equal(t, "Bearer second", last.Header.Get("Authorization"))
}

func TestRequest_NonSuccessYieldsAPIErrorWithBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Invalid credentials"))
	}))
	defer ts.Close()
	c := New(ts.URL, &memTokens{})

	err := c.Request(context.Background(), "/auth/login", RequestOptions{Method: http.MethodPost, SkipAuth: true}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.True(t, IsUnauthorized(err))
}

func TestRequest_EmptyErrorBodyYieldsStatusLine(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()
	c := New(ts.URL, &memTokens{})

	err := c.Request(context.Background(), "/payments", RequestOptions{}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP 503 Service Unavailable", err.Error())
	assert.False(t, IsUnauthorized(err))
}

func TestRequest_MalformedJSONIsParseError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{"))
	}))
	defer ts.Close()
	c := New(ts.URL, &memTokens{})

	var out map[string]any
	err := c.Request(context.Background(), "/payments/stats", RequestOptions{}, &out)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusOK, pe.Status)

	// пустое тело при ожидаемом JSON — тоже ParseError
	ts2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts2.Close()
	err = New(ts2.URL, &memTokens{}).Request(context.Background(), "/x", RequestOptions{}, &out)
	require.ErrorAs(t, err, &pe)
}

func TestRequest_TransportFailureIsNetworkErrorNamingBaseURL(t *testing.T) {
	// свободный порт: слушаем и сразу закрываем
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + l.Addr().String() + "/api"
	require.NoError(t, l.Close())

	c := New(base, &memTokens{})
	err = c.Request(context.Background(), "/payments", RequestOptions{}, nil)
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, base, ne.BaseURL)
	assert.Contains(t, err.Error(), base)
}

func TestRequest_TruncatedBodyIsNotNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		// объявлено 100 байт, отправлен один, соединение закрыто
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 100\r\n\r\n{")
		_ = buf.Flush()
		_ = conn.Close()
	}))
	defer ts.Close()

	var out map[string]any
	err := New(ts.URL, &memTokens{}).Request(context.Background(), "/payments/stats", RequestOptions{}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	var ne *NetworkError
	assert.False(t, errors.As(err, &ne))
	assert.Contains(t, err.Error(), "read response body")
}

func TestRequest_CanceledContextPropagatesUnchanged(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(ts.URL, &memTokens{}).Request(ctx, "/payments", RequestOptions{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	var ne *NetworkError
	assert.False(t, errors.As(err, &ne))
}

func TestRequest_StorageErrorPropagates(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()
	storeErr := &repo.StorageError{Op: "get", Key: repo.TokenKey, Err: errors.New("keychain locked")}
	c := New(ts.URL, &memTokens{err: storeErr})

	err := c.Request(context.Background(), "/payments", RequestOptions{}, nil)
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.False(t, called, "request must not be sent when the credential cannot be read")
}

func TestRequest_BodyEncodeErrorPropagates(t *testing.T) {
	c := New("http://example.invalid", &memTokens{})
	err := c.Request(context.Background(), "/x", RequestOptions{Method: http.MethodPost, Body: map[string]any{"c": make(chan int)}}, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "encode request body"))
}

func TestNew_TrimsBaseURL(t *testing.T) {
	c := New("http://localhost:3000/api/", &memTokens{})
	assert.Equal(t, "http://localhost:3000/api", c.BaseURL())
}
