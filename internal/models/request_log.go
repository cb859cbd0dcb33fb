package models

// ChangedBy identifies the actor of a change. It is supplied by the caller's
// identity layer and trusted verbatim.
type ChangedBy struct {
	Email      string `bson:"email" json:"email"`
	TenantType string `bson:"tenantType" json:"tenantType"`
	TenantID   string `bson:"tenantId" json:"tenantId"`
}

// RequestChange is one field-level delta in the append-only change log.
// OldValue and NewValue may be a string, number, boolean, nil, or a
// structured list, depending on the field.
type RequestChange struct {
	Field     string      `bson:"field" json:"field"`
	OldValue  interface{} `bson:"oldValue" json:"oldValue"`
	NewValue  interface{} `bson:"newValue" json:"newValue"`
	ChangedBy ChangedBy   `bson:"changedBy" json:"changedBy"`
	UpdatedAt int64       `bson:"updatedAt" json:"updatedAt"`
}

// PartyResponseTime is the average elapsed time attributed to one party.
type PartyResponseTime struct {
	Ms    float64 `bson:"ms" json:"ms"`
	Hours float64 `bson:"hours" json:"hours"`
}

// AvgResponseTime is the per-party response-time summary derived from a
// log's status changes. It is recomputed in full on every append and is not
// independently settable.
type AvgResponseTime struct {
	Provider PartyResponseTime `bson:"provider" json:"provider"`
	Proxy    PartyResponseTime `bson:"proxy" json:"proxy"`
}

// RequestLog is the audit trail owned 1:1 by a request. Changes are
// immutable once appended; ordering is append order.
type RequestLog struct {
	ID              string          `bson:"_id" json:"id"`
	RequestID       string          `bson:"requestId" json:"requestId"`
	Changes         []RequestChange `bson:"changes" json:"changes"`
	AvgResponseTime AvgResponseTime `bson:"avgResponseTime" json:"avgResponseTime"`
}
