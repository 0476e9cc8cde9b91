package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"PayTrack/internal/cli/model"
)

// ErrEmptyID возвращается, если идентификатор платежа не задан.
var ErrEmptyID = errors.New("payment id is required")

// PaymentsAPI — эндпоинты /payments.
type PaymentsAPI struct {
	c *Client
}

// List возвращает платежи по фильтру. Незаданные поля фильтра в запрос не попадают.
func (p *PaymentsAPI) List(ctx context.Context, f model.Filter) ([]model.Payment, error) {
	path := "/payments"
	if q := f.Query().Encode(); q != "" {
		path += "?" + q
	}
	var out []model.Payment
	if err := p.c.Request(ctx, path, RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats возвращает агрегаты для дашборда.
func (p *PaymentsAPI) Stats(ctx context.Context) (*model.PaymentStats, error) {
	var out model.PaymentStats
	if err := p.c.Request(ctx, "/payments/stats", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get возвращает платёж по идентификатору.
func (p *PaymentsAPI) Get(ctx context.Context, id string) (*model.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}
	var out model.Payment
	if err := p.c.Request(ctx, "/payments/"+url.PathEscape(id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create создаёт платёж и возвращает его серверное представление.
func (p *PaymentsAPI) Create(ctx context.Context, in model.CreatePayment) (*model.Payment, error) {
	var out model.Payment
	err := p.c.Request(ctx, "/payments", RequestOptions{
		Method: http.MethodPost,
		Body:   in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
