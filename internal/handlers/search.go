package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"socialgram/internal/services"
)

// SearchHandler handles filtered user searches
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search filters users by field-equals-value conditions joined left to
// right with AND/OR connectors.
// POST /api/search/users
func (h *SearchHandler) Search(c *gin.Context) {
	var req struct {
		Conditions []struct {
			Field string `json:"field" binding:"required"`
			Value string `json:"value" binding:"required"`
		} `json:"conditions" binding:"required"`
		Connectors []string `json:"connectors"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	conditions := make([]services.SearchCondition, 0, len(req.Conditions))
	for _, condition := range req.Conditions {
		conditions = append(conditions, services.SearchCondition{
			Field: services.SearchField(condition.Field),
			Value: condition.Value,
		})
	}
	connectors := make([]services.Connector, 0, len(req.Connectors))
	for _, connector := range req.Connectors {
		connectors = append(connectors, services.Connector(strings.ToUpper(connector)))
	}

	results, err := h.searchService.Search(c.Request.Context(), conditions, connectors)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
