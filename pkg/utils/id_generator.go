package utils

import (
	"github.com/google/uuid"
)

// GenerateID generates a new UUID for request, log, or tenant IDs
func GenerateID() string {
	return uuid.New().String()
}

// GenerateRequestID generates a unique request ID
func GenerateRequestID() string {
	return "REQ-" + uuid.New().String()
}

// GenerateLogID generates a unique request log ID
func GenerateLogID() string {
	return "LOG-" + uuid.New().String()
}

// GenerateTenantID generates a unique tenant ID
func GenerateTenantID() string {
	return "TNT-" + uuid.New().String()
}

// GenerateOfferID generates a unique save offer ID
func GenerateOfferID() string {
	return "OFFER-" + uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
