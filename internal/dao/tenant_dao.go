package dao

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/internal/store"
)

// TenantDAO handles document store operations for tenants
type TenantDAO struct {
	col *mongo.Collection
}

// NewTenantDAO creates a new TenantDAO instance
func NewTenantDAO(s *store.Store) *TenantDAO {
	return &TenantDAO{col: s.Collection(store.CollectionTenants)}
}

// Create inserts a new tenant document
func (dao *TenantDAO) Create(ctx context.Context, tenant *models.Tenant) error {
	if _, err := dao.col.InsertOne(ctx, tenant); err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

// GetByID retrieves a tenant by ID
func (dao *TenantDAO) GetByID(ctx context.Context, tenantID string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := dao.col.FindOne(ctx, bson.M{"_id": tenantID}).Decode(&tenant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("tenant %s: %w", tenantID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &tenant, nil
}

// GetAll retrieves every tenant in the collection.
func (dao *TenantDAO) GetAll(ctx context.Context) ([]models.Tenant, error) {
	cursor, err := dao.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer cursor.Close(ctx)

	tenants := make([]models.Tenant, 0)
	if err := cursor.All(ctx, &tenants); err != nil {
		return nil, fmt.Errorf("failed to decode tenants: %w", err)
	}
	return tenants, nil
}

// Update replaces the stored tenant document
func (dao *TenantDAO) Update(ctx context.Context, tenant *models.Tenant) error {
	result, err := dao.col.ReplaceOne(ctx, bson.M{"_id": tenant.ID}, tenant)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("tenant %s: %w", tenant.ID, models.ErrNotFound)
	}
	return nil
}

// Delete removes a tenant document
func (dao *TenantDAO) Delete(ctx context.Context, tenantID string) error {
	result, err := dao.col.DeleteOne(ctx, bson.M{"_id": tenantID})
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("tenant %s: %w", tenantID, models.ErrNotFound)
	}
	return nil
}
