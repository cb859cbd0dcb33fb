package models

// Tenant types.
const (
	TenantTypeProxy      = "proxy"
	TenantTypeProvider   = "provider"
	TenantTypeManagement = "management"
)

// IsValidTenantType reports whether tenantType is one of the known types.
func IsValidTenantType(tenantType string) bool {
	return tenantType == TenantTypeProxy ||
		tenantType == TenantTypeProvider ||
		tenantType == TenantTypeManagement
}

// TenantSaveOffer is a named retention offer a provider can extend in
// response to a cancellation request.
type TenantSaveOffer struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Discount    string `bson:"discount,omitempty" json:"discount,omitempty"`
}

// Tenant represents a document in the tenants collection.
// RequiredCustomerInfo and SaveOffers are only meaningful for providers.
type Tenant struct {
	ID                   string            `bson:"_id" json:"id"`
	Name                 string            `bson:"name" json:"name"`
	Type                 string            `bson:"type" json:"type"`
	Active               bool              `bson:"active" json:"active"`
	RequiredCustomerInfo []string          `bson:"requiredCustomerInfo,omitempty" json:"requiredCustomerInfo,omitempty"`
	SaveOffers           []TenantSaveOffer `bson:"saveOffers,omitempty" json:"saveOffers,omitempty"`
	Admins               []string          `bson:"admins,omitempty" json:"admins,omitempty"`
}

// TenantRef is the id/name pair returned in stats and connected-tenant
// listings.
type TenantRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TenantCreateRequest is the API payload for creating a tenant.
type TenantCreateRequest struct {
	Name                 string            `json:"name" binding:"required"`
	Type                 string            `json:"type" binding:"required"`
	RequiredCustomerInfo []string          `json:"requiredCustomerInfo,omitempty"`
	SaveOffers           []TenantSaveOffer `json:"saveOffers,omitempty"`
	Admins               []string          `json:"admins,omitempty"`
}

// TenantUpdateRequest is the API payload for updating a tenant. Nil fields
// are left unchanged.
type TenantUpdateRequest struct {
	Name                 *string            `json:"name,omitempty"`
	Active               *bool              `json:"active,omitempty"`
	RequiredCustomerInfo *[]string          `json:"requiredCustomerInfo,omitempty"`
	SaveOffers           *[]TenantSaveOffer `json:"saveOffers,omitempty"`
	Admins               *[]string          `json:"admins,omitempty"`
}
