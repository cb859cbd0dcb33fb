package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/internal/service"
	"github.com/proxylink/proxylink-api/internal/utils"
)

// RequestHandler handles request-related HTTP requests
type RequestHandler struct {
	requestService *service.RequestService
	logService     *service.RequestLogService
}

// NewRequestHandler creates a new request handler instance
func NewRequestHandler(requestService *service.RequestService, logService *service.RequestLogService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		logService:     logService,
	}
}

// CreateRequest handles POST /requests
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var body models.RequestCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	actor := utils.GetActorFromContext(c)
	created, err := h.requestService.CreateRequest(c.Request.Context(), &body, actor)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeTenantNotFound)
		return
	}

	utils.SendCreatedResponse(c, created)
}

// GetRequest handles GET /requests/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	request, err := h.requestService.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeRequestNotFound)
		return
	}

	utils.SendOKResponse(c, request)
}

// SearchRequests handles GET /requests
func (h *RequestHandler) SearchRequests(c *gin.Context) {
	filter := models.RequestFilter{
		ProxyTenantID:    c.Query("proxyTenantId"),
		ProviderTenantID: c.Query("providerTenantId"),
		Status:           c.Query("status"),
		SubmittedFrom:    c.Query("submittedFrom"),
		SubmittedTo:      c.Query("submittedTo"),
	}

	requests, err := h.requestService.SearchRequests(c.Request.Context(), filter)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeRequestNotFound)
		return
	}

	utils.SendOKResponse(c, requests)
}

// UpdateRequest handles PATCH /requests/:id
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	var patch models.RequestPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	actor := utils.GetActorFromContext(c)
	updated, err := h.requestService.UpdateRequest(c.Request.Context(), c.Param("id"), &patch, actor)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeRequestNotFound)
		return
	}

	utils.SendOKResponse(c, updated)
}

// GetRequestLog handles GET /requests/:id/log
func (h *RequestHandler) GetRequestLog(c *gin.Context) {
	request, err := h.requestService.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeRequestNotFound)
		return
	}

	log, err := h.logService.GetLog(c.Request.Context(), request.LogID)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeLogNotFound)
		return
	}

	utils.SendOKResponse(c, log)
}

// BulkUpload handles POST /requests/bulk. Expects a multipart form with a
// CSV file plus proxyTenantId, providerTenantId, and requestType fields.
func (h *RequestHandler) BulkUpload(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.SendBadRequestError(c, "A CSV file is required", err.Error())
		return
	}
	defer file.Close()

	actor := utils.GetActorFromContext(c)
	created, err := h.requestService.BulkCreate(
		c.Request.Context(),
		c.PostForm("proxyTenantId"),
		c.PostForm("providerTenantId"),
		c.PostForm("requestType"),
		file,
		actor,
	)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeTenantNotFound)
		return
	}

	utils.SendCreatedResponse(c, created)
}
