package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/internal/service"
	"github.com/proxylink/proxylink-api/internal/utils"
)

// TenantHandler handles tenant-related HTTP requests
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler instance
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// CreateTenant handles POST /tenants
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var body models.TenantCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), &body)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeTenantNotFound)
		return
	}

	utils.SendCreatedResponse(c, tenant)
}

// GetTenant handles GET /tenants/:id
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.tenantService.GetTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeTenantNotFound)
		return
	}

	utils.SendOKResponse(c, tenant)
}

// ListTenants handles GET /tenants
func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.tenantService.ListTenants(c.Request.Context(), c.Query("type"))
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeTenantNotFound)
		return
	}

	utils.SendOKResponse(c, tenants)
}

// UpdateTenant handles PATCH /tenants/:id
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var patch models.TenantUpdateRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeTenantNotFound)
		return
	}

	utils.SendOKResponse(c, tenant)
}

// DeleteTenant handles DELETE /tenants/:id
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	if err := h.tenantService.DeleteTenant(c.Request.Context(), c.Param("id")); err != nil {
		utils.SendServiceError(c, err, models.ErrCodeTenantNotFound)
		return
	}

	utils.SendNoContentResponse(c)
}

// ConnectedTenants handles GET /tenants/:id/connected
func (h *TenantHandler) ConnectedTenants(c *gin.Context) {
	refs, err := h.tenantService.ConnectedTenants(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeTenantNotFound)
		return
	}

	utils.SendOKResponse(c, refs)
}
