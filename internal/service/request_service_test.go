package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/internal/service/mocks"
)

type requestServiceFixture struct {
	requestDAO *mocks.MockRequestDAO
	logDAO     *mocks.MockRequestLogDAO
	tenantDAO  *mocks.MockTenantDAO
	svc        *RequestService
}

func newRequestFixture() *requestServiceFixture {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	f := &requestServiceFixture{
		requestDAO: new(mocks.MockRequestDAO),
		logDAO:     new(mocks.MockRequestLogDAO),
		tenantDAO:  new(mocks.MockTenantDAO),
	}
	logService := NewRequestLogService(f.logDAO, logger)
	f.svc = NewRequestService(f.requestDAO, f.tenantDAO, logService, logger)
	return f
}

func proxyActor() *models.ChangedBy {
	return &models.ChangedBy{
		Email:      "agent@proxy.io",
		TenantType: models.TenantTypeProxy,
		TenantID:   "TNT-PROXY",
	}
}

// TestCreateRequest_RequiresActor tests that creation without an acting
// identity is rejected
func TestCreateRequest_RequiresActor(t *testing.T) {
	f := newRequestFixture()

	_, err := f.svc.CreateRequest(context.Background(), &models.RequestCreateRequest{}, nil)

	assert.ErrorIs(t, err, models.ErrUnauthorized)
	f.requestDAO.AssertNotCalled(t, "Create")
}

// TestCreateRequest_ValidatesRequestType tests the request type guard
func TestCreateRequest_ValidatesRequestType(t *testing.T) {
	f := newRequestFixture()

	_, err := f.svc.CreateRequest(context.Background(), &models.RequestCreateRequest{
		RequestType:      "bogus",
		ProxyTenantID:    "TNT-PROXY",
		ProviderTenantID: "TNT-PROV",
	}, proxyActor())

	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

// TestCreateRequest_SeedsPendingRequestAndLog tests that a new request
// starts Pending at version 1 with a seeded change log
func TestCreateRequest_SeedsPendingRequestAndLog(t *testing.T) {
	f := newRequestFixture()

	f.requestDAO.On("Create", mock.Anything, mock.AnythingOfType("*models.Request")).Return(nil)

	var createdLog *models.RequestLog
	f.logDAO.On("Create", mock.Anything, mock.AnythingOfType("*models.RequestLog")).
		Run(func(args mock.Arguments) {
			createdLog = args.Get(1).(*models.RequestLog)
		}).
		Return(nil)

	request, err := f.svc.CreateRequest(context.Background(), &models.RequestCreateRequest{
		RequestType:      models.RequestTypeCancellation,
		ProxyTenantID:    "TNT-PROXY",
		ProviderTenantID: "TNT-PROV",
		CustomerInfo:     map[string]string{"email": "c@example.com"},
	}, proxyActor())

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(request.ID, "REQ-"))
	assert.True(t, strings.HasPrefix(request.LogID, "LOG-"))
	assert.Equal(t, 1, request.Version)
	assert.Equal(t, models.StatusPending, request.Status)
	assert.Equal(t, "agent@proxy.io", request.SubmittedBy)
	assert.NotNil(t, request.DateSubmitted)

	assert.Equal(t, request.LogID, createdLog.ID)
	assert.Equal(t, request.ID, createdLog.RequestID)
	assert.Len(t, createdLog.Changes, 1)
	assert.Equal(t, models.StatusPending, createdLog.Changes[0].NewValue)
}

// TestCreateRequest_RollsBackOnLogFailure tests that the request write is
// undone when the log cannot be created
func TestCreateRequest_RollsBackOnLogFailure(t *testing.T) {
	f := newRequestFixture()

	logErr := errors.New("log collection unavailable")
	f.requestDAO.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.logDAO.On("Create", mock.Anything, mock.Anything).Return(logErr)
	f.requestDAO.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := f.svc.CreateRequest(context.Background(), &models.RequestCreateRequest{
		RequestType:      models.RequestTypeCancellation,
		ProxyTenantID:    "TNT-PROXY",
		ProviderTenantID: "TNT-PROV",
	}, proxyActor())

	assert.ErrorIs(t, err, logErr)
	f.requestDAO.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("string"))
}

// TestUpdateRequest_NoDeltasSkipsWrites tests that an update producing no
// field changes leaves the request and log untouched
func TestUpdateRequest_NoDeltasSkipsWrites(t *testing.T) {
	f := newRequestFixture()

	current := &models.Request{
		ID:      "REQ-1",
		Version: 3,
		Status:  models.StatusPending,
		LogID:   "LOG-1",
	}
	f.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(current, nil)

	status := models.StatusPending
	result, err := f.svc.UpdateRequest(context.Background(), "REQ-1", &models.RequestPatch{Status: &status}, proxyActor())

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Version)
	f.requestDAO.AssertNotCalled(t, "Update")
	f.logDAO.AssertNotCalled(t, "GetByID")
}

// TestUpdateRequest_PersistsMergeAndAppendsLog tests the full update path:
// version bump, merged document write, and log append
func TestUpdateRequest_PersistsMergeAndAppendsLog(t *testing.T) {
	f := newRequestFixture()

	current := &models.Request{
		ID:      "REQ-1",
		Version: 1,
		Status:  models.StatusPending,
		LogID:   "LOG-1",
	}
	f.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(current, nil)

	var persisted *models.Request
	f.requestDAO.On("Update", mock.Anything, mock.AnythingOfType("*models.Request")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*models.Request)
		}).
		Return(nil)

	f.logDAO.On("GetByID", mock.Anything, "LOG-1").Return(&models.RequestLog{ID: "LOG-1", RequestID: "REQ-1"}, nil)
	f.logDAO.On("Update", mock.Anything, mock.Anything).Return(nil)

	status := models.StatusSaveOffered
	result, err := f.svc.UpdateRequest(context.Background(), "REQ-1", &models.RequestPatch{Status: &status}, proxyActor())

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Version)
	assert.Equal(t, models.StatusSaveOffered, result.Status)
	assert.Equal(t, persisted, result)

	// The loaded document is not mutated in place.
	assert.Equal(t, 1, current.Version)
	assert.Equal(t, models.StatusPending, current.Status)
	f.logDAO.AssertCalled(t, "Update", mock.Anything, mock.Anything)
}

// TestUpdateRequest_RejectsUnknownStatus tests that an unknown status value
// is rejected before the request is loaded
func TestUpdateRequest_RejectsUnknownStatus(t *testing.T) {
	f := newRequestFixture()

	status := "Resolved"
	_, err := f.svc.UpdateRequest(context.Background(), "REQ-1", &models.RequestPatch{Status: &status}, proxyActor())

	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	f.requestDAO.AssertNotCalled(t, "GetByID")
}

// TestSearchRequests_RequiresTenantSide tests that an unscoped search is
// rejected
func TestSearchRequests_RequiresTenantSide(t *testing.T) {
	f := newRequestFixture()

	_, err := f.svc.SearchRequests(context.Background(), models.RequestFilter{Status: models.StatusPending})

	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	f.requestDAO.AssertNotCalled(t, "Query")
}

// TestBulkCreate_CreatesRequestPerRow tests the CSV path end to end: header
// validation against the provider's required fields, one Pending request
// per row
func TestBulkCreate_CreatesRequestPerRow(t *testing.T) {
	f := newRequestFixture()

	provider := &models.Tenant{
		ID:                   "TNT-PROV",
		Type:                 models.TenantTypeProvider,
		RequiredCustomerInfo: []string{"email", "name"},
	}
	f.tenantDAO.On("GetByID", mock.Anything, "TNT-PROV").Return(provider, nil)

	var created []*models.Request
	f.requestDAO.On("Create", mock.Anything, mock.AnythingOfType("*models.Request")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*models.Request))
		}).
		Return(nil)
	f.logDAO.On("Create", mock.Anything, mock.Anything).Return(nil)

	csvBody := "email,name,plan\n" +
		"a@example.com,Alice,gold\n" +
		"b@example.com,Bob,silver\n"

	requests, err := f.svc.BulkCreate(
		context.Background(),
		"TNT-PROXY",
		"TNT-PROV",
		models.RequestTypeCancellation,
		strings.NewReader(csvBody),
		proxyActor(),
	)

	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Len(t, created, 2)
	assert.Equal(t, "a@example.com", requests[0].CustomerInfo["email"])
	assert.Equal(t, "gold", requests[0].CustomerInfo["plan"])
	assert.Equal(t, models.StatusPending, requests[1].Status)
}

// TestBulkCreate_MissingRequiredColumn tests rejection when the header
// lacks a provider-required customerInfo field
func TestBulkCreate_MissingRequiredColumn(t *testing.T) {
	f := newRequestFixture()

	provider := &models.Tenant{
		ID:                   "TNT-PROV",
		Type:                 models.TenantTypeProvider,
		RequiredCustomerInfo: []string{"email", "accountNumber"},
	}
	f.tenantDAO.On("GetByID", mock.Anything, "TNT-PROV").Return(provider, nil)

	csvBody := "email,name\na@example.com,Alice\n"

	_, err := f.svc.BulkCreate(
		context.Background(),
		"TNT-PROXY",
		"TNT-PROV",
		models.RequestTypeCancellation,
		strings.NewReader(csvBody),
		proxyActor(),
	)

	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "accountNumber")
	f.requestDAO.AssertNotCalled(t, "Create")
}
