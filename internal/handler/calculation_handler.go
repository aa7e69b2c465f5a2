package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/middleware"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/repository"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/service"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/pkg/pagination"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/pkg/response"
)

type CalculationHandler struct {
	calcService service.CalculationService
}

func NewCalculationHandler(calcService service.CalculationService) *CalculationHandler {
	return &CalculationHandler{calcService: calcService}
}

func (h *CalculationHandler) RegisterRoutes(router *gin.RouterGroup) {
	calc := router.Group("/api/calculations")
	calc.Use(middleware.RequireRole(model.RoleAdmin, model.RoleOfficer, model.RoleViewer))
	{
		calc.POST("", h.Calculate)
		calc.POST("/batch", h.CalculateBatch)
		calc.GET("/history", h.GetHistory)
	}
}

// Calculate handles POST /api/calculations to resolve a rate and compute duty
// @Summary      Calculate landed cost
// @Description  Resolves the applicable tariff rate for the consignment and computes duty, final trade value, and optionally freight and insurance
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CalculationRequest  true  "Calculation Payload"
// @Success      200      {object}  response.Response{data=service.CalculationResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/calculations [post]
func (h *CalculationHandler) Calculate(c *gin.Context) {
	var req service.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, service.CodeInvalidRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.calcService.Calculate(c.Request.Context(), req, userIDFromContext(c))
	if err != nil {
		status := service.HTTPStatus(err)
		c.JSON(status, response.ErrorWithCode(status, service.ErrorCode(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CalculateBatch handles POST /api/calculations/batch
// @Summary      Calculate a batch of consignments
// @Description  Runs each calculation independently; one failing slot never aborts the rest. Slot order matches the request order.
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BatchCalculationRequest  true  "Batch Payload"
// @Success      200      {object}  response.Response{data=[]service.BatchSlot}
// @Failure      400      {object}  response.Response
// @Router       /api/calculations/batch [post]
func (h *CalculationHandler) CalculateBatch(c *gin.Context) {
	var req service.BatchCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, service.CodeInvalidRequest, "Invalid request payload: "+err.Error()))
		return
	}

	slots := h.calcService.CalculateBatch(c.Request.Context(), req, userIDFromContext(c))

	c.JSON(http.StatusOK, response.Success(http.StatusOK, slots))
}

// GetHistory handles GET /api/calculations/history
// @Summary      List calculation history
// @Description  Retrieves persisted calculation outcomes, newest first, optionally filtered by importer, HS6 code, or applied source
// @Tags         calculations
// @Produce      json
// @Security     BearerAuth
// @Param        importer_code  query     string  false  "Importer country code"
// @Param        hs6            query     string  false  "HS6 product code"
// @Param        source         query     string  false  "Applied rate source (preference, suspension, measure)"
// @Param        page           query     int     false  "Page number (default 1)"
// @Param        limit          query     int     false  "Number of items per page (default 20)"
// @Success      200            {object}  response.PaginatedResponse
// @Failure      500            {object}  response.Response
// @Router       /api/calculations/history [get]
func (h *CalculationHandler) GetHistory(c *gin.Context) {
	params := pagination.Parse(c)
	filter := repository.HistoryFilter{
		ImporterCode:  c.Query("importer_code"),
		HS6:           c.Query("hs6"),
		AppliedSource: c.Query("source"),
	}

	entries, total, err := h.calcService.ListHistory(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch calculation history"))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, entries, params.Page, params.Limit, total))
}

// userIDFromContext reads the authenticated user's id set by RequireRole.
func userIDFromContext(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
