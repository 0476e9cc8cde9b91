package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// loggingTransport пишет в лог каждый запрос: метод, URL, статус и длительность.
// Заголовки (в том числе Authorization) не логируются.
type loggingTransport struct {
	next http.RoundTripper
	log  *zap.SugaredLogger
}

// NewLoggingTransport оборачивает next логированием запросов.
func NewLoggingTransport(next http.RoundTripper, log *zap.SugaredLogger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &loggingTransport{next: next, log: log}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.log.Debugw("api request failed",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"request_id", req.Header.Get(HeaderRequestID),
			"duration", duration,
			"error", err,
		)
		return nil, err
	}
	t.log.Debugw("api request",
		"method", req.Method,
		"url", req.URL.Redacted(),
		"request_id", req.Header.Get(HeaderRequestID),
		"status", resp.StatusCode,
		"duration", duration,
	)
	return resp, nil
}
