package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/proxylink/proxylink-api/internal/changelog"
	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/pkg/utils"
)

// RequestService handles business logic for request operations
type RequestService struct {
	requestDAO RequestDAO
	tenantDAO  TenantDAO
	logService *RequestLogService
	logger     *logrus.Logger
}

// NewRequestService creates a new request service instance
func NewRequestService(requestDAO RequestDAO, tenantDAO TenantDAO, logService *RequestLogService, logger *logrus.Logger) *RequestService {
	return &RequestService{
		requestDAO: requestDAO,
		tenantDAO:  tenantDAO,
		logService: logService,
		logger:     logger,
	}
}

// CreateRequest creates a new request in Pending status together with its
// change log. The log is created with the request and exists for as long as
// the request does.
func (s *RequestService) CreateRequest(ctx context.Context, request *models.RequestCreateRequest, actor *models.ChangedBy) (*models.Request, error) {
	if actor == nil || actor.Email == "" {
		return nil, fmt.Errorf("acting identity is required to submit a request: %w", models.ErrUnauthorized)
	}
	if err := s.validateCreateRequest(request); err != nil {
		return nil, err
	}

	submitted := utils.FormatTime(time.Now())
	created := &models.Request{
		ID:               utils.GenerateRequestID(),
		Version:          1,
		Status:           models.StatusPending,
		RequestType:      request.RequestType,
		SubmittedBy:      actor.Email,
		DateSubmitted:    &submitted,
		ProxyTenantID:    request.ProxyTenantID,
		ProviderTenantID: request.ProviderTenantID,
		CustomerInfo:     request.CustomerInfo,
		Notes:            request.Notes,
		LogID:            utils.GenerateLogID(),
	}

	if err := s.requestDAO.Create(ctx, created); err != nil {
		return nil, err
	}

	if err := s.logService.CreateLog(ctx, created); err != nil {
		// The store has no multi-document transactions; undo the request
		// write so the one-log-per-request invariant holds.
		if deleteErr := s.requestDAO.Delete(ctx, created.ID); deleteErr != nil {
			s.logger.WithError(deleteErr).WithField("request_id", created.ID).
				Error("Failed to roll back request after log creation failure")
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":         created.ID,
		"request_type":       created.RequestType,
		"proxy_tenant_id":    created.ProxyTenantID,
		"provider_tenant_id": created.ProviderTenantID,
	}).Info("Created request")

	return created, nil
}

// GetRequest retrieves a request by ID
func (s *RequestService) GetRequest(ctx context.Context, requestID string) (*models.Request, error) {
	if err := utils.ValidateRequestID(requestID); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
	}
	return s.requestDAO.GetByID(ctx, requestID)
}

// SearchRequests retrieves requests matching the filter
func (s *RequestService) SearchRequests(ctx context.Context, filter models.RequestFilter) ([]models.Request, error) {
	if filter.ProxyTenantID == "" && filter.ProviderTenantID == "" {
		return nil, fmt.Errorf("a proxy or provider tenant id is required: %w", models.ErrInvalidArgument)
	}
	return s.requestDAO.Query(ctx, filter)
}

// UpdateRequest applies a partial update to a request. Field-level deltas
// are detected against the current version and appended to the change log
// stamped with the acting identity; an update producing no deltas leaves
// both the request and its log untouched.
func (s *RequestService) UpdateRequest(ctx context.Context, requestID string, patch *models.RequestPatch, actor *models.ChangedBy) (*models.Request, error) {
	if actor == nil || actor.Email == "" {
		return nil, fmt.Errorf("acting identity is required to update a request: %w", models.ErrUnauthorized)
	}
	if err := utils.ValidateRequestID(requestID); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
	}
	if patch == nil {
		return nil, fmt.Errorf("update payload is required: %w", models.ErrInvalidArgument)
	}
	if patch.Status != nil && !models.IsValidStatus(*patch.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", *patch.Status, models.ErrInvalidArgument)
	}

	current, err := s.requestDAO.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	changes := changelog.DetectChanges(current, patch)
	if len(changes) == 0 {
		return current, nil
	}

	updated := applyPatch(current, patch)
	updated.Version = current.Version + 1

	if err := s.requestDAO.Update(ctx, updated); err != nil {
		return nil, err
	}

	if _, err := s.logService.AppendChanges(ctx, updated.LogID, changes, actor); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":   requestID,
		"change_count": len(changes),
		"changed_by":   actor.Email,
	}).Info("Updated request")

	return updated, nil
}

// BulkCreate creates one Pending request per CSV row. The header row names
// customerInfo fields; every field the provider requires must be present.
// Rows are processed in order and the whole upload fails on the first bad
// row or store error.
func (s *RequestService) BulkCreate(ctx context.Context, proxyTenantID, providerTenantID, requestType string, reader io.Reader, actor *models.ChangedBy) ([]models.Request, error) {
	if actor == nil || actor.Email == "" {
		return nil, fmt.Errorf("acting identity is required to upload requests: %w", models.ErrUnauthorized)
	}
	if !models.IsValidRequestType(requestType) {
		return nil, fmt.Errorf("invalid request type %q: %w", requestType, models.ErrInvalidArgument)
	}

	provider, err := s.tenantDAO.GetByID(ctx, providerTenantID)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(reader)
	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", models.ErrInvalidArgument)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[utils.SanitizeString(name)] = i
	}
	for _, required := range provider.RequiredCustomerInfo {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q: %w", required, models.ErrInvalidArgument)
		}
	}

	created := make([]models.Request, 0)
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(created)+2, models.ErrInvalidArgument)
		}

		customerInfo := make(map[string]string, len(columns))
		for name, index := range columns {
			if index < len(record) {
				customerInfo[name] = utils.SanitizeString(record[index])
			}
		}

		request, err := s.CreateRequest(ctx, &models.RequestCreateRequest{
			RequestType:      requestType,
			ProxyTenantID:    proxyTenantID,
			ProviderTenantID: providerTenantID,
			CustomerInfo:     customerInfo,
		}, actor)
		if err != nil {
			return nil, err
		}
		created = append(created, *request)
	}

	s.logger.WithFields(logrus.Fields{
		"provider_tenant_id": providerTenantID,
		"created_count":      len(created),
	}).Info("Bulk created requests from CSV")

	return created, nil
}

func (s *RequestService) validateCreateRequest(request *models.RequestCreateRequest) error {
	if request == nil {
		return fmt.Errorf("request payload is required: %w", models.ErrInvalidArgument)
	}
	if !models.IsValidRequestType(request.RequestType) {
		return fmt.Errorf("invalid request type %q: %w", request.RequestType, models.ErrInvalidArgument)
	}
	if err := utils.ValidateTenantID(request.ProxyTenantID); err != nil {
		return fmt.Errorf("proxy %s: %w", err.Error(), models.ErrInvalidArgument)
	}
	if err := utils.ValidateTenantID(request.ProviderTenantID); err != nil {
		return fmt.Errorf("provider %s: %w", err.Error(), models.ErrInvalidArgument)
	}
	return nil
}

// applyPatch merges the patch into a copy of current. Merging mirrors the
// change detector's field handling so the persisted document and the logged
// deltas always agree.
func applyPatch(current *models.Request, patch *models.RequestPatch) *models.Request {
	updated := *current

	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.RequestType != nil {
		updated.RequestType = *patch.RequestType
	}
	if patch.SubmittedBy != nil {
		updated.SubmittedBy = *patch.SubmittedBy
	}
	if patch.DateSubmitted != nil {
		updated.DateSubmitted = patch.DateSubmitted
	}
	if patch.DateResponded != nil {
		updated.DateResponded = patch.DateResponded
	}
	if patch.CustomerInfo != nil {
		merged := make(map[string]string, len(current.CustomerInfo)+len(patch.CustomerInfo))
		for k, v := range current.CustomerInfo {
			merged[k] = v
		}
		for k, v := range patch.CustomerInfo {
			merged[k] = v
		}
		updated.CustomerInfo = merged
	}
	if patch.SaveOffer != nil {
		offer := models.SaveOffer{}
		if current.SaveOffer != nil {
			offer = *current.SaveOffer
		}
		if patch.SaveOffer.ID != nil {
			offer.ID = *patch.SaveOffer.ID
		}
		if patch.SaveOffer.Title != nil {
			offer.Title = *patch.SaveOffer.Title
		}
		if patch.SaveOffer.DateOffered != nil {
			offer.DateOffered = patch.SaveOffer.DateOffered
		}
		if patch.SaveOffer.DateAccepted != nil {
			offer.DateAccepted = patch.SaveOffer.DateAccepted
		}
		if patch.SaveOffer.DateDeclined != nil {
			offer.DateDeclined = patch.SaveOffer.DateDeclined
		}
		if patch.SaveOffer.DateConfirmed != nil {
			offer.DateConfirmed = patch.SaveOffer.DateConfirmed
		}
		updated.SaveOffer = &offer
	}
	if patch.DeclineReason != nil {
		updated.DeclineReason = patch.DeclineReason
	}
	if patch.Notes != nil {
		updated.Notes = patch.Notes
	}

	return &updated
}
