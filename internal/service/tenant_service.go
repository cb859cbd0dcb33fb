package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/pkg/utils"
)

// TenantService handles business logic for tenant operations
type TenantService struct {
	tenantDAO  TenantDAO
	requestDAO RequestDAO
	logDAO     RequestLogDAO
	logger     *logrus.Logger
}

// NewTenantService creates a new tenant service instance
func NewTenantService(tenantDAO TenantDAO, requestDAO RequestDAO, logDAO RequestLogDAO, logger *logrus.Logger) *TenantService {
	return &TenantService{
		tenantDAO:  tenantDAO,
		requestDAO: requestDAO,
		logDAO:     logDAO,
		logger:     logger,
	}
}

// CreateTenant registers a new tenant. New tenants start active.
func (s *TenantService) CreateTenant(ctx context.Context, request *models.TenantCreateRequest) (*models.Tenant, error) {
	if request == nil {
		return nil, fmt.Errorf("tenant payload is required: %w", models.ErrInvalidArgument)
	}
	if err := utils.ValidateRequired("tenant name", request.Name); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
	}
	if !models.IsValidTenantType(request.Type) {
		return nil, fmt.Errorf("invalid tenant type %q: %w", request.Type, models.ErrInvalidArgument)
	}
	for _, admin := range request.Admins {
		if err := utils.ValidateEmail(admin); err != nil {
			return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
		}
	}

	tenant := &models.Tenant{
		ID:                   utils.GenerateTenantID(),
		Name:                 utils.SanitizeString(request.Name),
		Type:                 request.Type,
		Active:               true,
		RequiredCustomerInfo: request.RequiredCustomerInfo,
		SaveOffers:           request.SaveOffers,
		Admins:               request.Admins,
	}

	if err := s.tenantDAO.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id":   tenant.ID,
		"tenant_type": tenant.Type,
	}).Info("Created tenant")

	return tenant, nil
}

// GetTenant retrieves a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	if err := utils.ValidateTenantID(tenantID); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
	}
	return s.tenantDAO.GetByID(ctx, tenantID)
}

// ListTenants retrieves all tenants, optionally filtered by type
func (s *TenantService) ListTenants(ctx context.Context, tenantType string) ([]models.Tenant, error) {
	if tenantType != "" && !models.IsValidTenantType(tenantType) {
		return nil, fmt.Errorf("invalid tenant type %q: %w", tenantType, models.ErrInvalidArgument)
	}

	tenants, err := s.tenantDAO.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if tenantType == "" {
		return tenants, nil
	}

	filtered := make([]models.Tenant, 0, len(tenants))
	for _, tenant := range tenants {
		if tenant.Type == tenantType {
			filtered = append(filtered, tenant)
		}
	}
	return filtered, nil
}

// UpdateTenant applies a partial update to a tenant
func (s *TenantService) UpdateTenant(ctx context.Context, tenantID string, patch *models.TenantUpdateRequest) (*models.Tenant, error) {
	if err := utils.ValidateTenantID(tenantID); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
	}
	if patch == nil {
		return nil, fmt.Errorf("update payload is required: %w", models.ErrInvalidArgument)
	}

	tenant, err := s.tenantDAO.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := utils.ValidateRequired("tenant name", *patch.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
		}
		tenant.Name = utils.SanitizeString(*patch.Name)
	}
	if patch.Active != nil {
		tenant.Active = *patch.Active
	}
	if patch.RequiredCustomerInfo != nil {
		tenant.RequiredCustomerInfo = *patch.RequiredCustomerInfo
	}
	if patch.SaveOffers != nil {
		tenant.SaveOffers = *patch.SaveOffers
	}
	if patch.Admins != nil {
		for _, admin := range *patch.Admins {
			if err := utils.ValidateEmail(admin); err != nil {
				return nil, fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
			}
		}
		tenant.Admins = *patch.Admins
	}

	if err := s.tenantDAO.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.WithField("tenant_id", tenantID).Info("Updated tenant")
	return tenant, nil
}

// DeleteTenant removes a tenant together with every request the tenant
// participates in, on either side, and the change logs of those requests.
func (s *TenantService) DeleteTenant(ctx context.Context, tenantID string) error {
	if err := utils.ValidateTenantID(tenantID); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), models.ErrInvalidArgument)
	}

	if _, err := s.tenantDAO.GetByID(ctx, tenantID); err != nil {
		return err
	}

	asProxy, err := s.requestDAO.Query(ctx, models.RequestFilter{ProxyTenantID: tenantID})
	if err != nil {
		return err
	}
	asProvider, err := s.requestDAO.Query(ctx, models.RequestFilter{ProviderTenantID: tenantID})
	if err != nil {
		return err
	}

	requests := append(asProxy, asProvider...)
	for _, request := range requests {
		if err := s.logDAO.Delete(ctx, request.LogID); err != nil {
			return err
		}
		if err := s.requestDAO.Delete(ctx, request.ID); err != nil {
			return err
		}
	}

	if err := s.tenantDAO.Delete(ctx, tenantID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id":        tenantID,
		"deleted_requests": len(requests),
	}).Info("Deleted tenant and associated requests")

	return nil
}

// ConnectedTenants returns the tenants on the other side of the given
// tenant's requests, deduplicated.
func (s *TenantService) ConnectedTenants(ctx context.Context, tenantID string) ([]models.TenantRef, error) {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var filter models.RequestFilter
	if tenant.Type == models.TenantTypeProxy {
		filter.ProxyTenantID = tenantID
	} else {
		filter.ProviderTenantID = tenantID
	}

	requests, err := s.requestDAO.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	refs := make([]models.TenantRef, 0)
	for _, request := range requests {
		otherID := request.ProviderTenantID
		if tenant.Type != models.TenantTypeProxy {
			otherID = request.ProxyTenantID
		}
		if otherID == "" || seen[otherID] {
			continue
		}
		seen[otherID] = true

		other, err := s.tenantDAO.GetByID(ctx, otherID)
		if err != nil {
			// A dangling reference should not fail directory listing.
			s.logger.WithError(err).WithField("tenant_id", otherID).
				Warn("Skipping unresolvable connected tenant")
			continue
		}
		refs = append(refs, models.TenantRef{ID: other.ID, Name: other.Name})
	}

	return refs, nil
}
