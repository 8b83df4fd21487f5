package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialgram/internal/models"
	"socialgram/internal/services"
)

// CatalogHandler handles locations, songs, and product categories
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListLocations lists all locations.
// GET /api/locations
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.catalogService.ListLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// CreateLocation adds a location.
// POST /api/locations
func (h *CatalogHandler) CreateLocation(c *gin.Context) {
	var req struct {
		Name      string   `json:"name" binding:"required"`
		Latitude  float64  `json:"latitude"`
		Longitude float64  `json:"longitude"`
		Altitude  *float64 `json:"altitude"`
		City      string   `json:"city"`
		Country   string   `json:"country"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	id, err := h.catalogService.CreateLocation(c.Request.Context(), models.Location{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Altitude:  req.Altitude,
		City:      req.City,
		Country:   req.Country,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// UpdateLocation updates a location's name and coordinates.
// PUT /api/locations/:id
func (h *CatalogHandler) UpdateLocation(c *gin.Context) {
	var req struct {
		Name      string  `json:"name" binding:"required"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	err := h.catalogService.UpdateLocation(c.Request.Context(), models.Location{
		ID:        c.Param("id"),
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update location"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteLocation removes a location.
// DELETE /api/locations/:id
func (h *CatalogHandler) DeleteLocation(c *gin.Context) {
	err := h.catalogService.DeleteLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete location"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPostsByLocation lists the posts tagged with a location.
// GET /api/locations/:id/posts
func (h *CatalogHandler) GetPostsByLocation(c *gin.Context) {
	posts, err := h.catalogService.GetPostsByLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		}
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListSongs lists all songs.
// GET /api/songs
func (h *CatalogHandler) ListSongs(c *gin.Context) {
	songs, err := h.catalogService.ListSongs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load songs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

// UpdateSong updates a song's title, artist, and URL.
// PUT /api/songs/:id
func (h *CatalogHandler) UpdateSong(c *gin.Context) {
	var req struct {
		Title  string `json:"title" binding:"required"`
		Artist string `json:"artist" binding:"required"`
		URL    string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	err := h.catalogService.UpdateSong(c.Request.Context(), models.Song{
		ID:     c.Param("id"),
		Title:  req.Title,
		Artist: req.Artist,
		URL:    req.URL,
	})
	if err != nil {
		if errors.Is(err, services.ErrSongNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "song not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update song"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProductCategories lists all product categories.
// GET /api/categories
func (h *CatalogHandler) ListProductCategories(c *gin.Context) {
	categories, err := h.catalogService.ListProductCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// AddProductCategory adds a product category.
// POST /api/categories
func (h *CatalogHandler) AddProductCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	id, err := h.catalogService.AddProductCategory(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// UpdateProductCategory renames a product category.
// PUT /api/categories/:id
func (h *CatalogHandler) UpdateProductCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	err := h.catalogService.UpdateProductCategory(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProductCategory removes a product category.
// DELETE /api/categories/:id
func (h *CatalogHandler) DeleteProductCategory(c *gin.Context) {
	err := h.catalogService.DeleteProductCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
