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

// RequestDAO handles document store operations for requests
type RequestDAO struct {
	col *mongo.Collection
}

// NewRequestDAO creates a new RequestDAO instance
func NewRequestDAO(s *store.Store) *RequestDAO {
	return &RequestDAO{col: s.Collection(store.CollectionRequests)}
}

// Create inserts a new request document
func (dao *RequestDAO) Create(ctx context.Context, request *models.Request) error {
	if _, err := dao.col.InsertOne(ctx, request); err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by ID
func (dao *RequestDAO) GetByID(ctx context.Context, requestID string) (*models.Request, error) {
	var request models.Request
	err := dao.col.FindOne(ctx, bson.M{"_id": requestID}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("request %s: %w", requestID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &request, nil
}

// Update replaces the stored request document
func (dao *RequestDAO) Update(ctx context.Context, request *models.Request) error {
	result, err := dao.col.ReplaceOne(ctx, bson.M{"_id": request.ID}, request)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("request %s: %w", request.ID, models.ErrNotFound)
	}
	return nil
}

// Query retrieves all requests matching the filter. Zero-valued filter
// fields are ignored; date bounds are inclusive.
func (dao *RequestDAO) Query(ctx context.Context, filter models.RequestFilter) ([]models.Request, error) {
	query := bson.M{}
	if filter.ProxyTenantID != "" {
		query["proxyTenantId"] = filter.ProxyTenantID
	}
	if filter.ProviderTenantID != "" {
		query["providerTenantId"] = filter.ProviderTenantID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.SubmittedFrom != "" || filter.SubmittedTo != "" {
		dateRange := bson.M{}
		if filter.SubmittedFrom != "" {
			dateRange["$gte"] = filter.SubmittedFrom
		}
		if filter.SubmittedTo != "" {
			dateRange["$lte"] = filter.SubmittedTo
		}
		query["dateSubmitted"] = dateRange
	}

	cursor, err := dao.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := make([]models.Request, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}
	return requests, nil
}

// Delete removes a request document. Used only by cascading tenant
// deletion; requests are never deleted in normal operation.
func (dao *RequestDAO) Delete(ctx context.Context, requestID string) error {
	result, err := dao.col.DeleteOne(ctx, bson.M{"_id": requestID})
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("request %s: %w", requestID, models.ErrNotFound)
	}
	return nil
}
