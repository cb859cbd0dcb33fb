package models

// Request types routed between a proxy and a provider tenant.
const (
	RequestTypeCancellation = "Cancellation"
	RequestTypeDiscount     = "Discount"
)

// Request lifecycle statuses. Every status histogram carries all seven keys,
// whether or not a tenant has requests in that state.
const (
	StatusPending       = "Pending"
	StatusSaveOffered   = "Save Offered"
	StatusSaveAccepted  = "Save Accepted"
	StatusSaveDeclined  = "Save Declined"
	StatusSaveConfirmed = "Save Confirmed"
	StatusCanceled      = "Canceled"
	StatusDeclined      = "Declined"
)

// AllStatuses returns the canonical status list in display order.
func AllStatuses() []string {
	return []string{
		StatusPending,
		StatusSaveOffered,
		StatusSaveAccepted,
		StatusSaveDeclined,
		StatusSaveConfirmed,
		StatusCanceled,
		StatusDeclined,
	}
}

// IsValidStatus reports whether status is one of the canonical statuses.
func IsValidStatus(status string) bool {
	for _, s := range AllStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidRequestType reports whether requestType is a known request type.
func IsValidRequestType(requestType string) bool {
	return requestType == RequestTypeCancellation || requestType == RequestTypeDiscount
}

// DeclineReasonItem is one field/value pair explaining a provider's decline.
type DeclineReasonItem struct {
	Field string `bson:"field" json:"field"`
	Value string `bson:"value" json:"value"`
}

// SaveOffer is the retention offer snapshot embedded on a request. The date
// fields are ISO-8601 strings; nil means the milestone has not happened.
type SaveOffer struct {
	ID            string  `bson:"id" json:"id"`
	Title         string  `bson:"title" json:"title"`
	Description   string  `bson:"description,omitempty" json:"description,omitempty"`
	DateOffered   *string `bson:"dateOffered" json:"dateOffered"`
	DateAccepted  *string `bson:"dateAccepted" json:"dateAccepted"`
	DateDeclined  *string `bson:"dateDeclined" json:"dateDeclined"`
	DateConfirmed *string `bson:"dateConfirmed" json:"dateConfirmed"`
}

// Request represents a document in the requests collection. Field names are
// load-bearing for compatibility with the dashboard.
type Request struct {
	ID               string              `bson:"_id" json:"id"`
	Version          int                 `bson:"version" json:"version"`
	Status           string              `bson:"status" json:"status"`
	RequestType      string              `bson:"requestType" json:"requestType"`
	SubmittedBy      string              `bson:"submittedBy" json:"submittedBy"`
	DateSubmitted    *string             `bson:"dateSubmitted" json:"dateSubmitted"`
	DateResponded    *string             `bson:"dateResponded" json:"dateResponded"`
	ProxyTenantID    string              `bson:"proxyTenantId" json:"proxyTenantId"`
	ProviderTenantID string              `bson:"providerTenantId" json:"providerTenantId"`
	CustomerInfo     map[string]string   `bson:"customerInfo" json:"customerInfo"`
	SaveOffer        *SaveOffer          `bson:"saveOffer,omitempty" json:"saveOffer,omitempty"`
	DeclineReason    []DeclineReasonItem `bson:"declineReason,omitempty" json:"declineReason,omitempty"`
	Notes            *string             `bson:"notes,omitempty" json:"notes,omitempty"`
	LogID            string              `bson:"logId" json:"logId"`
}

// SaveOfferPatch carries the saveOffer sub-fields a caller wants to change.
// Only the fixed allow-list of sub-fields is diffable; nil means absent.
type SaveOfferPatch struct {
	ID            *string `json:"id,omitempty"`
	Title         *string `json:"title,omitempty"`
	DateOffered   *string `json:"dateOffered,omitempty"`
	DateAccepted  *string `json:"dateAccepted,omitempty"`
	DateDeclined  *string `json:"dateDeclined,omitempty"`
	DateConfirmed *string `json:"dateConfirmed,omitempty"`
}

// RequestPatch is a partial request update. A nil field is absent and is
// skipped by the change detector; a present field is compared whole-value
// except for customerInfo and saveOffer, which diff per sub-field.
type RequestPatch struct {
	Status        *string             `json:"status,omitempty"`
	RequestType   *string             `json:"requestType,omitempty"`
	SubmittedBy   *string             `json:"submittedBy,omitempty"`
	DateSubmitted *string             `json:"dateSubmitted,omitempty"`
	DateResponded *string             `json:"dateResponded,omitempty"`
	CustomerInfo  map[string]string   `json:"customerInfo,omitempty"`
	SaveOffer     *SaveOfferPatch     `json:"saveOffer,omitempty"`
	DeclineReason []DeclineReasonItem `json:"declineReason,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
}

// RequestCreateRequest is the API payload for creating a request.
type RequestCreateRequest struct {
	RequestType      string            `json:"requestType" binding:"required"`
	ProxyTenantID    string            `json:"proxyTenantId" binding:"required"`
	ProviderTenantID string            `json:"providerTenantId" binding:"required"`
	CustomerInfo     map[string]string `json:"customerInfo,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
}

// RequestFilter narrows a requests-collection query. Zero values are ignored.
// Submitted bounds are inclusive ISO-8601 strings compared against
// dateSubmitted.
type RequestFilter struct {
	ProxyTenantID    string
	ProviderTenantID string
	Status           string
	SubmittedFrom    string
	SubmittedTo      string
}
