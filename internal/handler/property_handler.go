package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staynest/service-rental/internal/application"
	propertyDomain "github.com/staynest/service-rental/internal/domain/property"
	"github.com/staynest/service-rental/internal/platform/auth"
	"github.com/staynest/service-rental/internal/platform/middleware"
	"github.com/staynest/service-rental/internal/platform/response"
)

// PropertyHandler handles HTTP requests for property listings.
type PropertyHandler struct {
	service *application.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(service *application.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// RegisterRoutes registers all property routes on the given router group.
// Browsing listings is public; mutations require authentication.
func (h *PropertyHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	properties := r.Group("/api/v1/properties")
	{
		properties.GET("", h.ListProperties)
		properties.GET("/:id", h.GetProperty)

		properties.POST("", authMW, h.CreateProperty)
		properties.PUT("/:id", authMW, h.UpdateProperty)
		properties.DELETE("/:id", authMW, h.DeleteProperty)
	}

	mine := r.Group("/api/v1/my/properties")
	mine.Use(authMW)
	{
		mine.GET("", h.ListOwnProperties)
	}
}

// CreateProperty handles POST /api/v1/properties.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateProperty(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListProperties handles GET /api/v1/properties. Supports filtering by
// city, nightly rate range, guest capacity, bedrooms and availability, and
// sorting by price, city, bedrooms or listing date.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := parseListFilter(c)

	result, err := h.service.ListProperties(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// parseListFilter reads the listing filter from the query string. Malformed
// numeric or boolean values are treated as unset.
func parseListFilter(c *gin.Context) propertyDomain.ListFilter {
	filter := propertyDomain.ListFilter{
		City:      c.Query("city"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if v, err := strconv.ParseInt(c.Query("min_rate_cents"), 10, 64); err == nil {
		filter.MinRateCents = &v
	}
	if v, err := strconv.ParseInt(c.Query("max_rate_cents"), 10, 64); err == nil {
		filter.MaxRateCents = &v
	}
	if v, err := strconv.Atoi(c.Query("guests")); err == nil {
		filter.MinGuests = &v
	}
	if v, err := strconv.Atoi(c.Query("bedrooms")); err == nil {
		filter.Bedrooms = &v
	}
	if v, err := strconv.ParseBool(c.Query("available")); err == nil {
		filter.Available = &v
	}
	return filter
}

// GetProperty handles GET /api/v1/properties/:id.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	result, err := h.service.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateProperty handles PUT /api/v1/properties/:id.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateProperty(c.Request.Context(), userID, propertyID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteProperty handles DELETE /api/v1/properties/:id.
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.DeleteProperty(c.Request.Context(), userID, propertyID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListOwnProperties handles GET /api/v1/my/properties.
func (h *PropertyHandler) ListOwnProperties(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.ListOwnerProperties(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
