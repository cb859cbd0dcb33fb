package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/internal/service/mocks"
)

func newTestLogService(logDAO *mocks.MockRequestLogDAO, nowMillis int64) *RequestLogService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := NewRequestLogService(logDAO, logger)
	svc.now = func() int64 { return nowMillis }
	return svc
}

// TestCreateLog_SeedsPendingStatusChange tests that a new log carries the
// synthetic initial status change attributed to the submitting proxy
func TestCreateLog_SeedsPendingStatusChange(t *testing.T) {
	logDAO := new(mocks.MockRequestLogDAO)
	svc := newTestLogService(logDAO, 1717000000000)

	request := &models.Request{
		ID:            "REQ-1",
		LogID:         "LOG-1",
		SubmittedBy:   "agent@proxy.io",
		ProxyTenantID: "TNT-PROXY",
	}

	var created *models.RequestLog
	logDAO.On("Create", mock.Anything, mock.AnythingOfType("*models.RequestLog")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.RequestLog)
		}).
		Return(nil)

	err := svc.CreateLog(context.Background(), request)

	assert.NoError(t, err)
	assert.Equal(t, "LOG-1", created.ID)
	assert.Equal(t, "REQ-1", created.RequestID)
	assert.Len(t, created.Changes, 1)

	seed := created.Changes[0]
	assert.Equal(t, "status", seed.Field)
	assert.Nil(t, seed.OldValue)
	assert.Equal(t, models.StatusPending, seed.NewValue)
	assert.Equal(t, "agent@proxy.io", seed.ChangedBy.Email)
	assert.Equal(t, models.TenantTypeProxy, seed.ChangedBy.TenantType)
	assert.Equal(t, "TNT-PROXY", seed.ChangedBy.TenantID)
	assert.Equal(t, int64(1717000000000), seed.UpdatedAt)
	logDAO.AssertExpectations(t)
}

// TestAppendChanges_RequiresActor tests that appending without an acting
// identity is rejected before any store access
func TestAppendChanges_RequiresActor(t *testing.T) {
	logDAO := new(mocks.MockRequestLogDAO)
	svc := newTestLogService(logDAO, 0)

	changes := []models.RequestChange{{Field: "notes", NewValue: "x"}}

	_, err := svc.AppendChanges(context.Background(), "LOG-1", changes, nil)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = svc.AppendChanges(context.Background(), "LOG-1", changes, &models.ChangedBy{})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	logDAO.AssertNotCalled(t, "GetByID")
}

// TestAppendChanges_MissingLog tests that a missing log propagates not found
func TestAppendChanges_MissingLog(t *testing.T) {
	logDAO := new(mocks.MockRequestLogDAO)
	svc := newTestLogService(logDAO, 0)

	logDAO.On("GetByID", mock.Anything, "LOG-GONE").
		Return(nil, fmt.Errorf("request log LOG-GONE: %w", models.ErrNotFound))

	actor := &models.ChangedBy{Email: "a@proxy.io", TenantType: models.TenantTypeProxy}
	_, err := svc.AppendChanges(context.Background(), "LOG-GONE", []models.RequestChange{{Field: "notes"}}, actor)

	assert.ErrorIs(t, err, models.ErrNotFound)
	logDAO.AssertNotCalled(t, "Update")
}

// TestAppendChanges_StampsAndRecomputes tests that appended changes share
// one timestamp and the summary is recomputed over the full history
func TestAppendChanges_StampsAndRecomputes(t *testing.T) {
	logDAO := new(mocks.MockRequestLogDAO)
	svc := newTestLogService(logDAO, 3_600_000)

	existing := &models.RequestLog{
		ID:        "LOG-1",
		RequestID: "REQ-1",
		Changes: []models.RequestChange{
			{
				Field:     "status",
				NewValue:  models.StatusPending,
				ChangedBy: models.ChangedBy{Email: "a@proxy.io", TenantType: models.TenantTypeProxy},
				UpdatedAt: 0,
			},
		},
	}
	logDAO.On("GetByID", mock.Anything, "LOG-1").Return(existing, nil)

	var updated *models.RequestLog
	logDAO.On("Update", mock.Anything, mock.AnythingOfType("*models.RequestLog")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*models.RequestLog)
		}).
		Return(nil)

	actor := &models.ChangedBy{Email: "b@provider.io", TenantType: models.TenantTypeProvider, TenantID: "TNT-PROV"}
	changes := []models.RequestChange{
		{Field: "status", OldValue: models.StatusPending, NewValue: models.StatusSaveOffered},
		{Field: "saveOffer.id", NewValue: "OFFER-1"},
	}

	result, err := svc.AppendChanges(context.Background(), "LOG-1", changes, actor)

	assert.NoError(t, err)
	assert.Same(t, updated, result)
	assert.Len(t, result.Changes, 3)

	for _, change := range result.Changes[1:] {
		assert.Equal(t, *actor, change.ChangedBy)
		assert.Equal(t, int64(3_600_000), change.UpdatedAt)
	}

	// One status interval of an hour, credited to the provider.
	assert.Equal(t, float64(3_600_000), result.AvgResponseTime.Provider.Ms)
	assert.Equal(t, 1.0, result.AvgResponseTime.Provider.Hours)
	assert.Zero(t, result.AvgResponseTime.Proxy.Ms)
	logDAO.AssertExpectations(t)
}

// TestAppendChanges_UpdateFailurePropagates tests that a store write failure
// surfaces raw
func TestAppendChanges_UpdateFailurePropagates(t *testing.T) {
	logDAO := new(mocks.MockRequestLogDAO)
	svc := newTestLogService(logDAO, 0)

	storeErr := errors.New("write concern timeout")
	logDAO.On("GetByID", mock.Anything, "LOG-1").Return(&models.RequestLog{ID: "LOG-1"}, nil)
	logDAO.On("Update", mock.Anything, mock.Anything).Return(storeErr)

	actor := &models.ChangedBy{Email: "a@proxy.io", TenantType: models.TenantTypeProxy}
	_, err := svc.AppendChanges(context.Background(), "LOG-1", []models.RequestChange{{Field: "notes"}}, actor)

	assert.ErrorIs(t, err, storeErr)
}

// TestGetLog_ValidatesID tests the log ID guard
func TestGetLog_ValidatesID(t *testing.T) {
	logDAO := new(mocks.MockRequestLogDAO)
	svc := newTestLogService(logDAO, 0)

	_, err := svc.GetLog(context.Background(), "")

	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	logDAO.AssertNotCalled(t, "GetByID")
}
