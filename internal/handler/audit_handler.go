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

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/audit-logs", middleware.RequireRole(model.RoleAdmin), h.GetAuditLogs)
}

// GetAuditLogs handles GET /api/audit-logs
// @Summary      List audit logs
// @Description  Retrieves paginated audit entries, newest first, optionally filtered by action code
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        action  query     string  false  "Action code filter (e.g. CREATE_TARIFF_PREFERENCE)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.PaginatedResponse
// @Failure      500     {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), c.Query("action"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch audit logs"))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, logs, params.Page, params.Limit, total))
}
