package view

import (
	"fmt"
	"strings"
	"time"

	"PayTrack/internal/cli/model"
)

// Style — условное оформление статуса в терминале.
type Style string

const (
	StyleSuccess Style = "success"
	StyleWarning Style = "warning"
	StyleError   Style = "error"
	StyleMuted   Style = "muted"
)

// DefaultMethodIcon выводится для неизвестных способов оплаты.
const DefaultMethodIcon = "💰"

// StatusStyle возвращает оформление статуса; неизвестные статусы — StyleMuted.
func StatusStyle(status string) Style {
	switch strings.ToLower(status) {
	case model.StatusCompleted:
		return StyleSuccess
	case model.StatusPending:
		return StyleWarning
	case model.StatusFailed:
		return StyleError
	default:
		return StyleMuted
	}
}

// StatusLabel — статус для вывода.
func StatusLabel(status string) string {
	if status == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(status)
}

// MethodIcon подбирает значок для способа оплаты.
func MethodIcon(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "credit card", "debit card":
		return "💳"
	case "paypal":
		return "🅿️"
	case "bank transfer":
		return "🏦"
	default:
		return DefaultMethodIcon
	}
}

// Amount форматирует сумму с двумя знаками после запятой.
func Amount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Date выводит дату платежа в коротком виде; нераспознанное значение возвращается как есть.
// Значения без зоны относятся к loc и не пересчитываются.
func Date(s string, loc *time.Location) string {
	if s == "" {
		return "-"
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc).Format("2006-01-02")
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// PaymentLine — одна строка списка платежей.
func PaymentLine(p model.Payment) string {
	return fmt.Sprintf("%-10s %-10s %s %-16s to %-20s %s  [%s]",
		Amount(p.Amount), StatusLabel(p.Status), MethodIcon(p.Method), p.Method, p.Receiver,
		Date(p.Date, time.Local), p.ID)
}
