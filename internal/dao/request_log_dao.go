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

// RequestLogDAO handles document store operations for request change logs
type RequestLogDAO struct {
	col *mongo.Collection
}

// NewRequestLogDAO creates a new RequestLogDAO instance
func NewRequestLogDAO(s *store.Store) *RequestLogDAO {
	return &RequestLogDAO{col: s.Collection(store.CollectionRequestLogs)}
}

// Create inserts a new request log document
func (dao *RequestLogDAO) Create(ctx context.Context, log *models.RequestLog) error {
	if _, err := dao.col.InsertOne(ctx, log); err != nil {
		return fmt.Errorf("failed to create request log: %w", err)
	}
	return nil
}

// GetByID retrieves a request log by ID
func (dao *RequestLogDAO) GetByID(ctx context.Context, logID string) (*models.RequestLog, error) {
	var log models.RequestLog
	err := dao.col.FindOne(ctx, bson.M{"_id": logID}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("request log %s: %w", logID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get request log: %w", err)
	}
	return &log, nil
}

// Update replaces the stored log document with the merged result of an
// append. Last write wins: there is no version check, so concurrent appends
// to the same log can lose updates.
func (dao *RequestLogDAO) Update(ctx context.Context, log *models.RequestLog) error {
	result, err := dao.col.ReplaceOne(ctx, bson.M{"_id": log.ID}, log)
	if err != nil {
		return fmt.Errorf("failed to update request log: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("request log %s: %w", log.ID, models.ErrNotFound)
	}
	return nil
}

// GetAll retrieves every request log in the collection.
func (dao *RequestLogDAO) GetAll(ctx context.Context) ([]models.RequestLog, error) {
	cursor, err := dao.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list request logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := make([]models.RequestLog, 0)
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode request logs: %w", err)
	}
	return logs, nil
}

// Delete removes a request log document. Used only by cascading tenant
// deletion.
func (dao *RequestLogDAO) Delete(ctx context.Context, logID string) error {
	if _, err := dao.col.DeleteOne(ctx, bson.M{"_id": logID}); err != nil {
		return fmt.Errorf("failed to delete request log: %w", err)
	}
	return nil
}
