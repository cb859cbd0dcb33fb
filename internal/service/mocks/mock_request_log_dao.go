package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/proxylink/proxylink-api/internal/models"
)

// MockRequestLogDAO is a mock implementation of RequestLogDAO
type MockRequestLogDAO struct {
	mock.Mock
}

func (m *MockRequestLogDAO) Create(ctx context.Context, log *models.RequestLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockRequestLogDAO) GetByID(ctx context.Context, logID string) (*models.RequestLog, error) {
	args := m.Called(ctx, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RequestLog), args.Error(1)
}

func (m *MockRequestLogDAO) Update(ctx context.Context, log *models.RequestLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockRequestLogDAO) GetAll(ctx context.Context) ([]models.RequestLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RequestLog), args.Error(1)
}

func (m *MockRequestLogDAO) Delete(ctx context.Context, logID string) error {
	args := m.Called(ctx, logID)
	return args.Error(0)
}
