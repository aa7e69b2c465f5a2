package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/middleware"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/service"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/pkg/response"
)

type IngestHandler struct {
	ingestService service.IngestService
}

func NewIngestHandler(ingestService service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

func (h *IngestHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/reference/import", middleware.RequireRole(model.RoleAdmin), h.ImportReferenceData)
}

// ImportReferenceData handles POST /api/reference/import
// @Summary      Import reference data
// @Description  Streams an XML document of countries and products and upserts them by natural key. The whole import runs in one transaction.
// @Tags         reference
// @Accept       application/xml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.IngestSummary}
// @Failure      400  {object}  response.Response
// @Router       /api/reference/import [post]
func (h *IngestHandler) ImportReferenceData(c *gin.Context) {
	summary, err := h.ingestService.ImportReferenceData(c.Request.Context(), c.Request.Body, userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
