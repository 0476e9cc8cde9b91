package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"PayTrack/internal/cli/model"
)

// DashboardRecent — сколько последних платежей показывает дашборд.
const DashboardRecent = 5

// PaymentGateway — эндпоинты платежей (api.PaymentsAPI).
type PaymentGateway interface {
	List(ctx context.Context, f model.Filter) ([]model.Payment, error)
	Stats(ctx context.Context) (*model.PaymentStats, error)
	Get(ctx context.Context, id string) (*model.Payment, error)
	Create(ctx context.Context, in model.CreatePayment) (*model.Payment, error)
}

// ValidationError — входные данные отклонены до обращения к серверу.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, "; ")
}

// Dashboard — агрегаты и последние платежи.
// StatsErr/RecentErr заполнены, если соответствующая часть заменена пустыми данными.
type Dashboard struct {
	Stats     model.PaymentStats
	Recent    []model.Payment
	StatsErr  error
	RecentErr error
}

// PaymentService — операции над платежами для CLI.
type PaymentService struct {
	gw       PaymentGateway
	validate *validator.Validate
	log      *zap.SugaredLogger
}

// NewPaymentService создаёт сервис платежей.
func NewPaymentService(gw PaymentGateway, log *zap.SugaredLogger) *PaymentService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	v := validator.New()
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := model.ParseDateBound(fl.Field().String())
		return err == nil
	})
	return &PaymentService{gw: gw, validate: v, log: log}
}

// List возвращает платежи по фильтру.
func (s *PaymentService) List(ctx context.Context, f model.Filter) ([]model.Payment, error) {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	f.Method = strings.TrimSpace(f.Method)
	f.DateFrom = strings.TrimSpace(f.DateFrom)
	f.DateTo = strings.TrimSpace(f.DateTo)
	if err := s.check(f); err != nil {
		return nil, err
	}
	if f.DateFrom != "" && f.DateTo != "" {
		from, _ := model.ParseDateBound(f.DateFrom)
		to, _ := model.ParseDateBound(f.DateTo)
		if from.After(to) {
			return nil, &ValidationError{Fields: []string{"from date is after to date"}}
		}
	}
	return s.gw.List(ctx, f)
}

// Get возвращает платёж по id.
func (s *PaymentService) Get(ctx context.Context, id string) (*model.Payment, error) {
	return s.gw.Get(ctx, id)
}

// Create проверяет и отправляет новый платёж.
func (s *PaymentService) Create(ctx context.Context, in model.CreatePayment) (*model.Payment, error) {
	in.Receiver = strings.TrimSpace(in.Receiver)
	in.Method = strings.TrimSpace(in.Method)
	in.Description = strings.TrimSpace(in.Description)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if err := s.check(in); err != nil {
		return nil, err
	}
	p, err := s.gw.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Debugw("payment created", "id", p.ID)
	return p, nil
}

// Stats возвращает агрегаты.
func (s *PaymentService) Stats(ctx context.Context) (*model.PaymentStats, error) {
	return s.gw.Stats(ctx)
}

// Dashboard параллельно загружает агрегаты и последние платежи.
// Сбой одной части заменяется пустыми данными; ошибка возвращается, только если
// не удалось получить ни то, ни другое.
func (s *PaymentService) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		st, err := s.gw.Stats(gctx)
		if err != nil {
			d.StatsErr = err
			return nil
		}
		d.Stats = *st
		return nil
	})
	g.Go(func() error {
		list, err := s.gw.List(gctx, model.Filter{Page: 1, Limit: DashboardRecent})
		if err != nil {
			d.RecentErr = err
			return nil
		}
		d.Recent = list
		return nil
	})
	_ = g.Wait()

	if d.Recent == nil {
		d.Recent = []model.Payment{}
	}
	if d.StatsErr != nil && d.RecentErr != nil {
		return nil, errors.Join(d.StatsErr, d.RecentErr)
	}
	if d.StatsErr != nil {
		s.log.Warnw("dashboard stats unavailable", "error", d.StatsErr)
	}
	if d.RecentErr != nil {
		s.log.Warnw("dashboard recent payments unavailable", "error", d.RecentErr)
	}
	return d, nil
}

func (s *PaymentService) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldMessage(fe))
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "isodate":
		return name + " must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}
