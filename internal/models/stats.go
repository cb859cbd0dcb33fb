package models

// StatsParams identifies the tenant and optional filters for a stats
// computation. TenantType and TenantID are required; SourceID is only
// honored from the provider's point of view.
type StatsParams struct {
	TenantType string `json:"tenantType"`
	TenantID   string `json:"tenantId"`
	FromDate   string `json:"fromDate,omitempty"`
	ToDate     string `json:"toDate,omitempty"`
	SourceID   string `json:"sourceId,omitempty"`
}

// SaveOfferCounts is the save-offer funnel. A request contributes to every
// bucket its status history passed through, not just its current status.
type SaveOfferCounts struct {
	Offered  int `json:"offered"`
	Accepted int `json:"accepted"`
	Declined int `json:"declined"`
}

// RequestsStats is the request-level portion of a stats report.
// AverageResponseTime is in days, rounded to one decimal place; DailyVolume
// is keyed by yyyy-MM-dd over the computed calendar window.
type RequestsStats struct {
	TotalCount          int             `json:"totalCount"`
	StatusCounts        map[string]int  `json:"statusCounts"`
	AverageResponseTime float64         `json:"averageResponseTime"`
	DailyVolume         map[string]int  `json:"dailyVolume"`
	SourceDistribution  map[string]int  `json:"sourceDistribution"`
	SaveOfferCounts     SaveOfferCounts `json:"saveOfferCounts"`
}

// StatsResponse is a complete tenant statistics report. It is regenerated on
// demand and never persisted or cached.
type StatsResponse struct {
	Requests RequestsStats `json:"requests"`
	Tenants  []TenantRef   `json:"tenants"`
}
