package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"PayTrack/internal/cli/model"
)

type mockAuthGateway struct{ mock.Mock }

func (m *mockAuthGateway) Register(ctx context.Context, email, password, name string) (*model.AuthResponse, error) {
	args := m.Called(ctx, email, password, name)
	resp, _ := args.Get(0).(*model.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthGateway) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	resp, _ := args.Get(0).(*model.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthGateway) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Get(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

type mockPaymentGateway struct{ mock.Mock }

func (m *mockPaymentGateway) List(ctx context.Context, f model.Filter) ([]model.Payment, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]model.Payment)
	return list, args.Error(1)
}

func (m *mockPaymentGateway) Stats(ctx context.Context) (*model.PaymentStats, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).(*model.PaymentStats)
	return st, args.Error(1)
}

func (m *mockPaymentGateway) Get(ctx context.Context, id string) (*model.Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentGateway) Create(ctx context.Context, in model.CreatePayment) (*model.Payment, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*model.Payment)
	return p, args.Error(1)
}

var (
	_ AuthGateway    = (*mockAuthGateway)(nil)
	_ PaymentGateway = (*mockPaymentGateway)(nil)
)
