package changelog

import (
	"sort"

	"github.com/proxylink/proxylink-api/internal/models"
)

// saveOfferFields is the fixed allow-list of saveOffer sub-fields the
// detector diffs, in emission order. Anything else on the offer snapshot is
// invisible to the change log.
var saveOfferFields = []string{
	"id",
	"title",
	"dateOffered",
	"dateAccepted",
	"dateDeclined",
	"dateConfirmed",
}

// DetectChanges compares the current request against a partial update and
// returns one change per differing field, without actor or timestamp (the
// log store stamps those on append). Absent patch fields are skipped.
//
// Dispatch is over a closed set of known fields: customerInfo and saveOffer
// diff per sub-field, everything else compares whole-value. Nested fields
// outside the two special cases are intentionally not diffed recursively.
func DetectChanges(current *models.Request, patch *models.RequestPatch) []models.RequestChange {
	changes := make([]models.RequestChange, 0)
	if current == nil || patch == nil {
		return changes
	}

	if patch.Status != nil && *patch.Status != current.Status {
		changes = append(changes, newChange("status", current.Status, *patch.Status))
	}
	if patch.RequestType != nil && *patch.RequestType != current.RequestType {
		changes = append(changes, newChange("requestType", current.RequestType, *patch.RequestType))
	}
	if patch.SubmittedBy != nil && *patch.SubmittedBy != current.SubmittedBy {
		changes = append(changes, newChange("submittedBy", current.SubmittedBy, *patch.SubmittedBy))
	}
	if patch.DateSubmitted != nil && !strPtrEqual(patch.DateSubmitted, current.DateSubmitted) {
		changes = append(changes, newChange("dateSubmitted", strPtrValue(current.DateSubmitted), *patch.DateSubmitted))
	}
	if patch.DateResponded != nil && !strPtrEqual(patch.DateResponded, current.DateResponded) {
		changes = append(changes, newChange("dateResponded", strPtrValue(current.DateResponded), *patch.DateResponded))
	}

	changes = append(changes, detectCustomerInfoChanges(current, patch)...)
	changes = append(changes, detectSaveOfferChanges(current, patch)...)

	if patch.DeclineReason != nil && !declineReasonsEqual(current.DeclineReason, patch.DeclineReason) {
		var oldValue interface{}
		if current.DeclineReason != nil {
			oldValue = current.DeclineReason
		}
		changes = append(changes, newChange("declineReason", oldValue, patch.DeclineReason))
	}
	if patch.Notes != nil && !strPtrEqual(patch.Notes, current.Notes) {
		changes = append(changes, newChange("notes", strPtrValue(current.Notes), *patch.Notes))
	}

	return changes
}

// detectCustomerInfoChanges diffs customerInfo sub-fields individually,
// emitting customerInfo.<field> changes. Keys are walked in sorted order so
// the output is deterministic. A sub-field missing on the current request
// compares as null.
func detectCustomerInfoChanges(current *models.Request, patch *models.RequestPatch) []models.RequestChange {
	if patch.CustomerInfo == nil {
		return nil
	}

	keys := make([]string, 0, len(patch.CustomerInfo))
	for k := range patch.CustomerInfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var changes []models.RequestChange
	for _, key := range keys {
		newValue := patch.CustomerInfo[key]
		oldValue, exists := current.CustomerInfo[key]
		if exists && oldValue == newValue {
			continue
		}
		var old interface{}
		if exists {
			old = oldValue
		}
		changes = append(changes, newChange("customerInfo."+key, old, newValue))
	}
	return changes
}

// detectSaveOfferChanges diffs only the allow-listed saveOffer sub-fields,
// and only those present in the patch. A missing current offer compares
// every sub-field as null.
func detectSaveOfferChanges(current *models.Request, patch *models.RequestPatch) []models.RequestChange {
	if patch.SaveOffer == nil {
		return nil
	}

	var changes []models.RequestChange
	for _, field := range saveOfferFields {
		newValue, present := saveOfferPatchValue(patch.SaveOffer, field)
		if !present {
			continue
		}
		oldValue := saveOfferCurrentValue(current.SaveOffer, field)
		if oldValue == interface{}(newValue) {
			continue
		}
		changes = append(changes, newChange("saveOffer."+field, oldValue, newValue))
	}
	return changes
}

func saveOfferPatchValue(patch *models.SaveOfferPatch, field string) (string, bool) {
	var p *string
	switch field {
	case "id":
		p = patch.ID
	case "title":
		p = patch.Title
	case "dateOffered":
		p = patch.DateOffered
	case "dateAccepted":
		p = patch.DateAccepted
	case "dateDeclined":
		p = patch.DateDeclined
	case "dateConfirmed":
		p = patch.DateConfirmed
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

func saveOfferCurrentValue(offer *models.SaveOffer, field string) interface{} {
	if offer == nil {
		return nil
	}
	switch field {
	case "id":
		return offer.ID
	case "title":
		return offer.Title
	case "dateOffered":
		return strPtrValue(offer.DateOffered)
	case "dateAccepted":
		return strPtrValue(offer.DateAccepted)
	case "dateDeclined":
		return strPtrValue(offer.DateDeclined)
	case "dateConfirmed":
		return strPtrValue(offer.DateConfirmed)
	}
	return nil
}

func newChange(field string, oldValue, newValue interface{}) models.RequestChange {
	return models.RequestChange{
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
	}
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// strPtrValue unwraps a nullable string for use as a change value; nil stays
// nil so it serializes as null.
func strPtrValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func declineReasonsEqual(a, b []models.DeclineReasonItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
