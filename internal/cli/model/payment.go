package model

import "encoding/json"

// Payment statuses known to the client. Other values are passed through as is.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Payment — платёж в том виде, в котором его отдаёт сервер. Клиент его не изменяет.
type Payment struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Receiver    string  `json:"receiver"`
	Status      string  `json:"status"`
	Method      string  `json:"method"`
	Date        string  `json:"date"` // ISO-8601, разбирается только при выводе
	Description string  `json:"description,omitempty"`
}

// UnmarshalJSON принимает идентификатор и как "id", и как "_id".
func (p *Payment) UnmarshalJSON(b []byte) error {
	type plain Payment
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}

// PaymentStats — агрегаты для дашборда, считаются на сервере.
type PaymentStats struct {
	Total       int64   `json:"total"`
	TotalAmount float64 `json:"totalAmount"`
	Pending     int64   `json:"pending"`
	Completed   int64   `json:"completed"`
	Failed      int64   `json:"failed"`
}

// CreatePayment — тело запроса на создание платежа.
type CreatePayment struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	Receiver    string  `json:"receiver" validate:"required,max=200"`
	Status      string  `json:"status,omitempty" validate:"max=50"`
	Method      string  `json:"method" validate:"required,max=100"`
	Description string  `json:"description,omitempty" validate:"max=1000"`
}
