package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/middleware"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/service"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/pkg/pagination"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/pkg/response"
)

type TariffRateHandler struct {
	adminService service.TariffAdminService
}

func NewTariffRateHandler(adminService service.TariffAdminService) *TariffRateHandler {
	return &TariffRateHandler{adminService: adminService}
}

func (h *TariffRateHandler) RegisterRoutes(router *gin.RouterGroup) {
	readRoles := middleware.RequireRole(model.RoleAdmin, model.RoleOfficer, model.RoleViewer)
	writeRoles := middleware.RequireRole(model.RoleAdmin, model.RoleOfficer)

	prefs := router.Group("/api/tariff/preferences")
	{
		prefs.GET("", readRoles, h.ListPreferences)
		prefs.POST("", writeRoles, h.CreatePreference)
		prefs.PUT("/:id", writeRoles, h.UpdatePreference)
		prefs.DELETE("/:id", writeRoles, h.DeletePreference)
	}

	susps := router.Group("/api/tariff/suspensions")
	{
		susps.GET("", readRoles, h.ListSuspensions)
		susps.POST("", writeRoles, h.CreateSuspension)
		susps.PUT("/:id", writeRoles, h.UpdateSuspension)
		susps.DELETE("/:id", writeRoles, h.DeleteSuspension)
	}

	measures := router.Group("/api/tariff/measures")
	{
		measures.GET("", readRoles, h.ListMeasures)
		measures.POST("", writeRoles, h.CreateMeasure)
		measures.PUT("/:id", writeRoles, h.UpdateMeasure)
		measures.DELETE("/:id", writeRoles, h.DeleteMeasure)
	}
}

// --- Preferences ---

// ListPreferences handles GET /api/tariff/preferences
// @Summary      List tariff preferences
// @Tags         tariff
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.PaginatedResponse
// @Failure      500    {object}  response.Response
// @Router       /api/tariff/preferences [get]
func (h *TariffRateHandler) ListPreferences(c *gin.Context) {
	params := pagination.Parse(c)

	recs, total, err := h.adminService.ListPreferences(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch preferences"))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, recs, params.Page, params.Limit, total))
}

// CreatePreference handles POST /api/tariff/preferences
// @Summary      Create a tariff preference
// @Description  Registers a preferential rate for an importer/exporter/HS6 lane with a validity window
// @Tags         tariff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.PreferenceRequest  true  "Preference Payload"
// @Success      201      {object}  response.Response{data=service.PreferenceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/tariff/preferences [post]
func (h *TariffRateHandler) CreatePreference(c *gin.Context) {
	var req service.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rec, err := h.adminService.CreatePreference(c.Request.Context(), req, userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rec))
}

// UpdatePreference handles PUT /api/tariff/preferences/:id
// @Summary      Update a tariff preference
// @Tags         tariff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Preference ID"
// @Param        payload  body      service.PreferenceRequest  true  "Preference Payload"
// @Success      200      {object}  response.Response{data=service.PreferenceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/tariff/preferences/{id} [put]
func (h *TariffRateHandler) UpdatePreference(c *gin.Context) {
	var req service.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rec, err := h.adminService.UpdatePreference(c.Request.Context(), c.Param("id"), req, userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// DeletePreference handles DELETE /api/tariff/preferences/:id
// @Summary      Delete a tariff preference
// @Tags         tariff
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Preference ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/tariff/preferences/{id} [delete]
func (h *TariffRateHandler) DeletePreference(c *gin.Context) {
	if err := h.adminService.DeletePreference(c.Request.Context(), c.Param("id"), userIDFromContext(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Preference deleted successfully"))
}

// --- Suspensions ---

// ListSuspensions handles GET /api/tariff/suspensions
// @Summary      List tariff suspensions
// @Tags         tariff
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.PaginatedResponse
// @Failure      500    {object}  response.Response
// @Router       /api/tariff/suspensions [get]
func (h *TariffRateHandler) ListSuspensions(c *gin.Context) {
	params := pagination.Parse(c)

	recs, total, err := h.adminService.ListSuspensions(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch suspensions"))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, recs, params.Page, params.Limit, total))
}

// CreateSuspension handles POST /api/tariff/suspensions
// @Summary      Create a tariff suspension
// @Description  Registers a temporary override rate for an importer/HS6 pair; only active suspensions participate in rate resolution
// @Tags         tariff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SuspensionRequest  true  "Suspension Payload"
// @Success      201      {object}  response.Response{data=service.SuspensionResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/tariff/suspensions [post]
func (h *TariffRateHandler) CreateSuspension(c *gin.Context) {
	var req service.SuspensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rec, err := h.adminService.CreateSuspension(c.Request.Context(), req, userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rec))
}

// UpdateSuspension handles PUT /api/tariff/suspensions/:id
// @Summary      Update a tariff suspension
// @Tags         tariff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Suspension ID"
// @Param        payload  body      service.SuspensionRequest  true  "Suspension Payload"
// @Success      200      {object}  response.Response{data=service.SuspensionResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/tariff/suspensions/{id} [put]
func (h *TariffRateHandler) UpdateSuspension(c *gin.Context) {
	var req service.SuspensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rec, err := h.adminService.UpdateSuspension(c.Request.Context(), c.Param("id"), req, userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// DeleteSuspension handles DELETE /api/tariff/suspensions/:id
// @Summary      Delete a tariff suspension
// @Tags         tariff
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Suspension ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/tariff/suspensions/{id} [delete]
func (h *TariffRateHandler) DeleteSuspension(c *gin.Context) {
	if err := h.adminService.DeleteSuspension(c.Request.Context(), c.Param("id"), userIDFromContext(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Suspension deleted successfully"))
}

// --- Measures ---

// ListMeasures handles GET /api/tariff/measures
// @Summary      List tariff measures
// @Tags         tariff
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.PaginatedResponse
// @Failure      500    {object}  response.Response
// @Router       /api/tariff/measures [get]
func (h *TariffRateHandler) ListMeasures(c *gin.Context) {
	params := pagination.Parse(c)

	recs, total, err := h.adminService.ListMeasures(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch measures"))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, recs, params.Page, params.Limit, total))
}

// CreateMeasure handles POST /api/tariff/measures
// @Summary      Create a tariff measure
// @Description  Registers the standard (MFN) rate for an importer/HS6 pair; ad valorem, specific per-kg, or compound
// @Tags         tariff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.MeasureRequest  true  "Measure Payload"
// @Success      201      {object}  response.Response{data=service.MeasureResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/tariff/measures [post]
func (h *TariffRateHandler) CreateMeasure(c *gin.Context) {
	var req service.MeasureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rec, err := h.adminService.CreateMeasure(c.Request.Context(), req, userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rec))
}

// UpdateMeasure handles PUT /api/tariff/measures/:id
// @Summary      Update a tariff measure
// @Tags         tariff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Measure ID"
// @Param        payload  body      service.MeasureRequest  true  "Measure Payload"
// @Success      200      {object}  response.Response{data=service.MeasureResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/tariff/measures/{id} [put]
func (h *TariffRateHandler) UpdateMeasure(c *gin.Context) {
	var req service.MeasureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rec, err := h.adminService.UpdateMeasure(c.Request.Context(), c.Param("id"), req, userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// DeleteMeasure handles DELETE /api/tariff/measures/:id
// @Summary      Delete a tariff measure
// @Tags         tariff
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Measure ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/tariff/measures/{id} [delete]
func (h *TariffRateHandler) DeleteMeasure(c *gin.Context) {
	if err := h.adminService.DeleteMeasure(c.Request.Context(), c.Param("id"), userIDFromContext(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Measure deleted successfully"))
}
