package model

import (
	"errors"
	"net/url"
	"strconv"
	"time"
)

// ErrInvalidDate — граница периода не является датой ISO-8601.
var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{"2006-01-02", time.RFC3339Nano, "2006-01-02T15:04:05"}

// ParseDateBound разбирает границу периода: дату (YYYY-MM-DD) или метку времени RFC 3339.
// Значения без зоны считаются UTC.
func ParseDateBound(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Filter — параметры выборки списка платежей. Живёт только в памяти.
type Filter struct {
	Status   string `validate:"max=50"` // любой статус, не только известные клиенту
	Method   string
	DateFrom string `validate:"omitempty,isodate"`
	DateTo   string `validate:"omitempty,isodate"`
	Page     int    `validate:"gte=0"`
	Limit    int    `validate:"gte=0,lte=500"`
}

// Query строит query-параметры, пропуская незаданные поля.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Method != "" {
		q.Set("method", f.Method)
	}
	if f.DateFrom != "" {
		q.Set("startDate", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("endDate", f.DateTo)
	}
	return q
}
