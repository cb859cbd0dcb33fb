package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/internal/service"
	"github.com/proxylink/proxylink-api/internal/utils"
)

// StatsHandler handles statistics HTTP requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler instance
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// CalculateStats handles POST /stats
func (h *StatsHandler) CalculateStats(c *gin.Context) {
	var params models.StatsParams
	if err := c.ShouldBindJSON(&params); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	stats, err := h.statsService.CalculateStats(c.Request.Context(), &params)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeTenantNotFound)
		return
	}

	utils.SendOKResponse(c, stats)
}
