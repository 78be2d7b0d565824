package handler

import (
	"Orbit/internal/api/dto"
	"Orbit/internal/pkg/response"
	"Orbit/internal/pkg/util"
	"Orbit/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	dashboardSvc service.DashboardService
}

func NewAnalyticsHandler(dashboardSvc service.DashboardService) *AnalyticsHandler {
	return &AnalyticsHandler{
		dashboardSvc: dashboardSvc,
	}
}

// GetDashboard GET /api/analytics/dashboard
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	req, ok := bindDashboardQuery(c)
	if !ok {
		return
	}
	res, err := h.dashboardSvc.GetDashboard(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetPlatforms GET /api/analytics/platforms
func (h *AnalyticsHandler) GetPlatforms(c *gin.Context) {
	req, ok := bindDashboardQuery(c)
	if !ok {
		return
	}
	res, err := h.dashboardSvc.GetPlatforms(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// InvalidateCache DELETE /api/analytics/cache/:brand_id
func (h *AnalyticsHandler) InvalidateCache(c *gin.Context) {
	brandID, err := util.ParseBrandID(c.Param("brand_id"))
	if err != nil {
		response.Error(c, service.ErrBrandInvalid)
		return
	}
	if err = h.dashboardSvc.InvalidateBrand(c.Request.Context(), brandID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"brand": util.FormatBrandID(brandID)})
}

func bindDashboardQuery(c *gin.Context) (*dto.DashboardQueryDTO, bool) {
	var req dto.DashboardQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return nil, false
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return nil, false
	}
	return &req, true
}
