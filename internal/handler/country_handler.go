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

type CountryHandler struct {
	countryService service.CountryService
}

func NewCountryHandler(countryService service.CountryService) *CountryHandler {
	return &CountryHandler{countryService: countryService}
}

func (h *CountryHandler) RegisterRoutes(router *gin.RouterGroup) {
	countries := router.Group("/api/countries")
	{
		countries.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleOfficer, model.RoleViewer), h.ListCountries)
		countries.GET("/:code", middleware.RequireRole(model.RoleAdmin, model.RoleOfficer, model.RoleViewer), h.GetCountryByCode)
		countries.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleOfficer), h.CreateCountry)
	}
}

// ListCountries handles GET /api/countries
// @Summary      List countries
// @Description  Retrieves a paginated list of countries, optionally filtered by a name/code search term
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        search  query     string  false  "Search term matched against code and name"
// @Success      200     {object}  response.PaginatedResponse
// @Failure      500     {object}  response.Response
// @Router       /api/countries [get]
func (h *CountryHandler) ListCountries(c *gin.Context) {
	params := pagination.Parse(c)

	countries, total, err := h.countryService.ListCountries(c.Request.Context(), params.Page, params.Limit, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch countries"))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, countries, params.Page, params.Limit, total))
}

// GetCountryByCode handles GET /api/countries/:code
// @Summary      Get country by code
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "ISO 3166-1 alpha-3 country code"
// @Success      200   {object}  response.Response{data=service.CountryResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/countries/{code} [get]
func (h *CountryHandler) GetCountryByCode(c *gin.Context) {
	country, err := h.countryService.GetCountryByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch country"))
		return
	}
	if country == nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Country not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, country))
}

// CreateCountry handles POST /api/countries
// @Summary      Create a country
// @Tags         reference
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CountryRequest  true  "Country Payload"
// @Success      201      {object}  response.Response{data=service.CountryResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/countries [post]
func (h *CountryHandler) CreateCountry(c *gin.Context) {
	var req service.CountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	country, err := h.countryService.CreateCountry(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, country))
}
