package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/proxylink/proxylink-api/internal/changelog"
	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/pkg/utils"
)

// RequestLogService owns the append-only change log kept 1:1 with each
// request, and the derived response-time summary recomputed on every append.
type RequestLogService struct {
	logDAO RequestLogDAO
	logger *logrus.Logger
	now    func() int64
}

// NewRequestLogService creates a new request log service instance
func NewRequestLogService(logDAO RequestLogDAO, logger *logrus.Logger) *RequestLogService {
	return &RequestLogService{
		logDAO: logDAO,
		logger: logger,
		now:    utils.GetCurrentTimeMillis,
	}
}

// CreateLog creates the log for a newly created request, seeded with the
// synthetic "status: null -> Pending" change attributed to the submitting
// proxy actor.
func (s *RequestLogService) CreateLog(ctx context.Context, request *models.Request) error {
	seed := models.RequestChange{
		Field:    "status",
		OldValue: nil,
		NewValue: models.StatusPending,
		ChangedBy: models.ChangedBy{
			Email:      request.SubmittedBy,
			TenantType: models.TenantTypeProxy,
			TenantID:   request.ProxyTenantID,
		},
		UpdatedAt: s.now(),
	}

	log := &models.RequestLog{
		ID:        request.LogID,
		RequestID: request.ID,
		Changes:   []models.RequestChange{seed},
	}

	if err := s.logDAO.Create(ctx, log); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": request.ID,
		"log_id":     request.LogID,
	}).Info("Created request log")

	return nil
}

// AppendChanges stamps the supplied changes with the acting identity and a
// single shared timestamp, appends them to the log, recomputes the
// response-time summary over the entire resulting change list, and persists
// the merged result. The actor is required; a missing log propagates as not
// found.
func (s *RequestLogService) AppendChanges(ctx context.Context, logID string, changes []models.RequestChange, actor *models.ChangedBy) (*models.RequestLog, error) {
	if actor == nil || actor.Email == "" {
		return nil, fmt.Errorf("acting identity is required to amend a request log: %w", models.ErrUnauthorized)
	}

	log, err := s.logDAO.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}

	// One timestamp for the whole call: changes from a single update are
	// atomic-in-time.
	stamp := s.now()
	for i := range changes {
		changes[i].ChangedBy = *actor
		changes[i].UpdatedAt = stamp
	}

	log.Changes = append(log.Changes, changes...)
	log.AvgResponseTime = changelog.CalculateAverageResponseTime(log.Changes)

	if err := s.logDAO.Update(ctx, log); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"log_id":       logID,
		"change_count": len(changes),
	}).Info("Appended request log changes")

	return log, nil
}

// GetLog retrieves a request log by ID.
func (s *RequestLogService) GetLog(ctx context.Context, logID string) (*models.RequestLog, error) {
	if err := utils.ValidateLogID(logID); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
	}
	return s.logDAO.GetByID(ctx, logID)
}
