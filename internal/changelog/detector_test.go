package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proxylink/proxylink-api/internal/models"
)

func strPtr(s string) *string {
	return &s
}

// TestDetectChanges_NoPatchFields tests that an empty patch produces no changes
func TestDetectChanges_NoPatchFields(t *testing.T) {
	current := &models.Request{
		ID:     "REQ-1",
		Status: models.StatusPending,
	}

	changes := DetectChanges(current, &models.RequestPatch{})

	assert.Empty(t, changes)
}

// TestDetectChanges_NilInputs tests nil current and nil patch handling
func TestDetectChanges_NilInputs(t *testing.T) {
	assert.Empty(t, DetectChanges(nil, &models.RequestPatch{}))
	assert.Empty(t, DetectChanges(&models.Request{}, nil))
}

// TestDetectChanges_StatusChange tests whole-value comparison on status
func TestDetectChanges_StatusChange(t *testing.T) {
	current := &models.Request{Status: models.StatusPending}
	patch := &models.RequestPatch{Status: strPtr(models.StatusSaveOffered)}

	changes := DetectChanges(current, patch)

	assert.Len(t, changes, 1)
	assert.Equal(t, "status", changes[0].Field)
	assert.Equal(t, models.StatusPending, changes[0].OldValue)
	assert.Equal(t, models.StatusSaveOffered, changes[0].NewValue)
}

// TestDetectChanges_UnchangedFieldSkipped tests that a patch field equal to
// the current value produces no change
func TestDetectChanges_UnchangedFieldSkipped(t *testing.T) {
	current := &models.Request{Status: models.StatusPending, SubmittedBy: "a@proxy.io"}
	patch := &models.RequestPatch{
		Status:      strPtr(models.StatusPending),
		SubmittedBy: strPtr("a@proxy.io"),
	}

	assert.Empty(t, DetectChanges(current, patch))
}

// TestDetectChanges_CustomerInfoPerField tests that customerInfo is diffed
// per sub-field with dotted field names, in sorted key order
func TestDetectChanges_CustomerInfoPerField(t *testing.T) {
	current := &models.Request{
		CustomerInfo: map[string]string{
			"email": "old@example.com",
			"name":  "Alice",
		},
	}
	patch := &models.RequestPatch{
		CustomerInfo: map[string]string{
			"phone": "555-0100",
			"email": "new@example.com",
			"name":  "Alice",
		},
	}

	changes := DetectChanges(current, patch)

	assert.Len(t, changes, 2)
	assert.Equal(t, "customerInfo.email", changes[0].Field)
	assert.Equal(t, "old@example.com", changes[0].OldValue)
	assert.Equal(t, "new@example.com", changes[0].NewValue)
	assert.Equal(t, "customerInfo.phone", changes[1].Field)
	assert.Nil(t, changes[1].OldValue)
	assert.Equal(t, "555-0100", changes[1].NewValue)
}

// TestDetectChanges_SaveOfferAllowList tests that only allow-listed
// saveOffer sub-fields are diffed
func TestDetectChanges_SaveOfferAllowList(t *testing.T) {
	current := &models.Request{
		SaveOffer: &models.SaveOffer{
			ID:    "OFFER-1",
			Title: "10% off",
		},
	}
	patch := &models.RequestPatch{
		SaveOffer: &models.SaveOfferPatch{
			Title:        strPtr("20% off"),
			DateAccepted: strPtr("2025-06-10T12:00:00Z"),
		},
	}

	changes := DetectChanges(current, patch)

	assert.Len(t, changes, 2)
	assert.Equal(t, "saveOffer.title", changes[0].Field)
	assert.Equal(t, "10% off", changes[0].OldValue)
	assert.Equal(t, "20% off", changes[0].NewValue)
	assert.Equal(t, "saveOffer.dateAccepted", changes[1].Field)
	assert.Nil(t, changes[1].OldValue)
	assert.Equal(t, "2025-06-10T12:00:00Z", changes[1].NewValue)
}

// TestDetectChanges_SaveOfferAgainstMissingOffer tests that every patched
// sub-field compares as null when the request has no offer yet
func TestDetectChanges_SaveOfferAgainstMissingOffer(t *testing.T) {
	current := &models.Request{}
	patch := &models.RequestPatch{
		SaveOffer: &models.SaveOfferPatch{
			ID:          strPtr("OFFER-9"),
			DateOffered: strPtr("2025-06-01T09:00:00Z"),
		},
	}

	changes := DetectChanges(current, patch)

	assert.Len(t, changes, 2)
	assert.Equal(t, "saveOffer.id", changes[0].Field)
	assert.Nil(t, changes[0].OldValue)
	assert.Equal(t, "saveOffer.dateOffered", changes[1].Field)
	assert.Nil(t, changes[1].OldValue)
}

// TestDetectChanges_DeclineReasonWholeValue tests that declineReason is
// compared as a whole value, not per item
func TestDetectChanges_DeclineReasonWholeValue(t *testing.T) {
	current := &models.Request{
		DeclineReason: []models.DeclineReasonItem{{Field: "price", Value: "Too expensive"}},
	}
	newReasons := []models.DeclineReasonItem{
		{Field: "price", Value: "Too expensive"},
		{Field: "service", Value: "Poor support"},
	}
	patch := &models.RequestPatch{DeclineReason: newReasons}

	changes := DetectChanges(current, patch)

	assert.Len(t, changes, 1)
	assert.Equal(t, "declineReason", changes[0].Field)
	assert.Equal(t, newReasons, changes[0].NewValue)
}

// TestDetectChanges_EmissionOrder tests that changes come out in the fixed
// field order regardless of which fields the patch touches
func TestDetectChanges_EmissionOrder(t *testing.T) {
	current := &models.Request{
		Status:       models.StatusPending,
		CustomerInfo: map[string]string{},
	}
	patch := &models.RequestPatch{
		Notes:        strPtr("escalated"),
		CustomerInfo: map[string]string{"name": "Bob"},
		Status:       strPtr(models.StatusCanceled),
	}

	changes := DetectChanges(current, patch)

	assert.Len(t, changes, 3)
	assert.Equal(t, "status", changes[0].Field)
	assert.Equal(t, "customerInfo.name", changes[1].Field)
	assert.Equal(t, "notes", changes[2].Field)
}

// TestDetectChanges_ChangesAreUnstamped tests that the detector leaves actor
// and timestamp empty for the log store to fill in
func TestDetectChanges_ChangesAreUnstamped(t *testing.T) {
	current := &models.Request{Status: models.StatusPending}
	patch := &models.RequestPatch{Status: strPtr(models.StatusDeclined)}

	changes := DetectChanges(current, patch)

	assert.Len(t, changes, 1)
	assert.Empty(t, changes[0].ChangedBy.Email)
	assert.Zero(t, changes[0].UpdatedAt)
}
