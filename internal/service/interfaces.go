package service

import (
	"context"

	"github.com/proxylink/proxylink-api/internal/models"
)

// RequestDAO defines the requests-collection operations the services need.
type RequestDAO interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, requestID string) (*models.Request, error)
	Update(ctx context.Context, request *models.Request) error
	Query(ctx context.Context, filter models.RequestFilter) ([]models.Request, error)
	Delete(ctx context.Context, requestID string) error
}

// RequestLogDAO defines the requestLogs-collection operations the services
// need.
type RequestLogDAO interface {
	Create(ctx context.Context, log *models.RequestLog) error
	GetByID(ctx context.Context, logID string) (*models.RequestLog, error)
	Update(ctx context.Context, log *models.RequestLog) error
	GetAll(ctx context.Context) ([]models.RequestLog, error)
	Delete(ctx context.Context, logID string) error
}

// TenantDAO defines the tenants-collection operations the services need.
type TenantDAO interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, tenantID string) (*models.Tenant, error)
	GetAll(ctx context.Context) ([]models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, tenantID string) error
}
