package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/proxylink/proxylink-api/internal/models"
)

// MockRequestDAO is a mock implementation of RequestDAO
type MockRequestDAO struct {
	mock.Mock
}

func (m *MockRequestDAO) Create(ctx context.Context, request *models.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestDAO) GetByID(ctx context.Context, requestID string) (*models.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockRequestDAO) Update(ctx context.Context, request *models.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestDAO) Query(ctx context.Context, filter models.RequestFilter) ([]models.Request, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *MockRequestDAO) Delete(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}
