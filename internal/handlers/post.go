package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"socialgram/internal/auth"
	"socialgram/internal/models"
	"socialgram/internal/services"
	"socialgram/internal/storage"
)

// PostHandler handles post lifecycle and comment endpoints
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost validates and creates a post with its media.
// POST /api/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req struct {
		Type     string          `json:"type" binding:"required,oneof=normal listing story"`
		Caption  *string         `json:"caption"`
		Location *string         `json:"location"`
		Song     *string         `json:"song"`
		Title    string          `json:"title"`
		Price    decimal.Decimal `json:"price"`
		Category string          `json:"category"`
		Files    []string        `json:"files"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	files := make([]services.MediaFile, 0, len(req.Files))
	for _, uri := range req.Files {
		contentType, data, err := storage.ParseDataURI(uri)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request", "reason": "files"})
			return
		}
		files = append(files, services.MediaFile{Data: data, ContentType: contentType})
	}

	input := services.CreatePostInput{
		Kind:       models.PostKind(req.Type),
		Caption:    req.Caption,
		LocationID: req.Location,
		SongID:     req.Song,
		Title:      req.Title,
		Price:      req.Price,
		CategoryID: req.Category,
		Files:      files,
	}

	postID, err := h.postService.CreatePost(c.Request.Context(), userID, input)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request", "reason": validationErr.Reason})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": postID})
}

// GetPost returns the nested view of one post. Anonymous viewers are
// allowed; their creator/collaborator/admin flags are simply false.
// GET /api/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	identity, _ := auth.GetIdentity(c)
	viewerID := ""
	if identity.Authenticated {
		viewerID = identity.UserID
	}

	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		}
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post if the caller is its creator or an admin.
// DELETE /api/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	err := h.postService.DeletePost(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetComments lists a post's comments.
// GET /api/posts/:id/comments
func (h *PostHandler) GetComments(c *gin.Context) {
	comments, err := h.postService.GetComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		}
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment attaches a comment to a post.
// POST /api/posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	err := h.postService.AddComment(c.Request.Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request", "reason": validationErr.Reason})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		}
		return
	}
	c.Status(http.StatusCreated)
}
