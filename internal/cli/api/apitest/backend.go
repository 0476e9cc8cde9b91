// Package apitest — поддельный бэкенд платежей для тестов клиента.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"PayTrack/internal/cli/model"
)

const secret = "apitest-secret"

// Backend — in-memory сервер с маршрутами /api/auth/* и /api/payments*.
type Backend struct {
	Server *httptest.Server

	// FailLogout заставляет /auth/logout отвечать 500.
	FailLogout bool
	// TokenTTL — срок жизни выдаваемых токенов.
	TokenTTL time.Duration

	mu       sync.Mutex
	users    map[string]user
	payments []model.Payment
	nextID   int
	requests []*http.Request
}

type user struct {
	Email    string `json:"email"`
	Password string `json:"-"`
	Name     string `json:"name"`
}

// NewBackend запускает сервер; он останавливается автоматически по окончании теста.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		users:    map[string]user{},
		TokenTTL: time.Hour,
	}
	r := chi.NewRouter()
	r.Use(b.record)
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", b.register)
		r.Post("/auth/login", b.login)
		r.Group(func(r chi.Router) {
			r.Use(withBearer)
			r.Post("/auth/logout", b.logout)
			r.Get("/payments", b.listPayments)
			r.Post("/payments", b.createPayment)
			r.Get("/payments/stats", b.stats)
			r.Get("/payments/{id}", b.getPayment)
		})
	})
	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// URL — базовый адрес API (с префиксом /api).
func (b *Backend) URL() string { return b.Server.URL + "/api" }

// AddUser заводит пользователя.
func (b *Backend) AddUser(email, password, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[email] = user{Email: email, Password: password, Name: name}
}

// AddPayment добавляет платёж и возвращает его id.
func (b *Backend) AddPayment(p model.Payment) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.ID == "" {
		b.nextID++
		p.ID = fmt.Sprintf("p%d", b.nextID)
	}
	b.payments = append(b.payments, p)
	return p.ID
}

// Requests возвращает копию принятых запросов.
func (b *Backend) Requests() []*http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*http.Request(nil), b.requests...)
}

// LastRequest возвращает последний принятый запрос или nil.
func (b *Backend) LastRequest() *http.Request {
	reqs := b.Requests()
	if len(reqs) == 0 {
		return nil
	}
	return reqs[len(reqs)-1]
}

// IssueToken выдаёт подписанный токен для email.
func (b *Backend) IssueToken(email string) string {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(b.TokenTTL)),
	}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return tok
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Clone(r.Context()))
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// withBearer пропускает только запросы с валидным bearer-токеном.
func withBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || raw == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		_, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return []byte(secret), nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	_, exists := b.users[req.Email]
	if !exists {
		b.users[req.Email] = user{Email: req.Email, Password: req.Password, Name: req.Name}
	}
	b.mu.Unlock()
	if exists {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"access_token": b.IssueToken(req.Email),
		"user":         user{Email: req.Email, Name: req.Name},
	})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	u, ok := b.users[req.Email]
	b.mu.Unlock()
	if !ok || u.Password != req.Password {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": b.IssueToken(req.Email),
		"user":         u,
	})
}

func (b *Backend) logout(w http.ResponseWriter, _ *http.Request) {
	if b.FailLogout {
		http.Error(w, "logout unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b.mu.Lock()
	res := make([]model.Payment, 0, len(b.payments))
	for _, p := range b.payments {
		if s := q.Get("status"); s != "" && !strings.EqualFold(p.Status, s) {
			continue
		}
		if m := q.Get("method"); m != "" && !strings.EqualFold(p.Method, m) {
			continue
		}
		if from := q.Get("startDate"); from != "" && p.Date < from {
			continue
		}
		if to := q.Get("endDate"); to != "" && p.Date > to {
			continue
		}
		res = append(res, p)
	}
	b.mu.Unlock()
	// новые сверху
	sort.SliceStable(res, func(i, j int) bool { return res[i].Date > res[j].Date })
	if l := q.Get("limit"); l != "" {
		var n int
		if _, err := fmt.Sscan(l, &n); err == nil && n >= 0 && n < len(res) {
			res = res[:n]
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (b *Backend) stats(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var st model.PaymentStats
	for _, p := range b.payments {
		st.Total++
		st.TotalAmount += p.Amount
		switch p.Status {
		case model.StatusPending:
			st.Pending++
		case model.StatusCompleted:
			st.Completed++
		case model.StatusFailed:
			st.Failed++
		}
	}
	writeJSON(w, http.StatusOK, st)
}

func (b *Backend) getPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.payments {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	http.Error(w, "Payment not found", http.StatusNotFound)
}

func (b *Backend) createPayment(w http.ResponseWriter, r *http.Request) {
	var in model.CreatePayment
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Amount <= 0 {
		http.Error(w, "Invalid payment", http.StatusBadRequest)
		return
	}
	status := in.Status
	if status == "" {
		status = model.StatusPending
	}
	p := model.Payment{
		Amount:      in.Amount,
		Receiver:    in.Receiver,
		Status:      status,
		Method:      in.Method,
		Description: in.Description,
		Date:        time.Now().UTC().Format(time.RFC3339),
	}
	p.ID = b.AddPayment(p)
	writeJSON(w, http.StatusCreated, p)
}
