package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialgram/internal/auth"
	"socialgram/internal/services"
)

// FeedHandler handles the feed views and ad impressions
type FeedHandler struct {
	feedService   *services.FeedService
	adService     *services.AdService
	collabService *services.CollabService
	userService   *services.UserService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	feedService *services.FeedService,
	adService *services.AdService,
	collabService *services.CollabService,
	userService *services.UserService,
) *FeedHandler {
	return &FeedHandler{
		feedService:   feedService,
		adService:     adService,
		collabService: collabService,
		userService:   userService,
	}
}

// GetFeedPosts returns the durable feed for the authenticated viewer.
// GET /api/feed/posts
func (h *FeedHandler) GetFeedPosts(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	posts, err := h.feedService.FeedPosts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetFeedStories returns the unexpired stories for the authenticated viewer.
// GET /api/feed/stories
func (h *FeedHandler) GetFeedStories(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	stories, err := h.feedService.FeedStories(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stories"})
		return
	}
	c.JSON(http.StatusOK, stories)
}

// GetBannerAd serves one ad impression to the viewer.
// GET /api/feed/ad
func (h *FeedHandler) GetBannerAd(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	ad, err := h.adService.ShowBannerAd(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoAdAvailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no ad available"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ad"})
		}
		return
	}
	c.JSON(http.StatusOK, ad)
}

// ClickAd records a click on a previously served impression.
// POST /api/ads/click
func (h *FeedHandler) ClickAd(c *gin.Context) {
	var req struct {
		ShowingID string `json:"showingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	err := h.adService.ClickAd(c.Request.Context(), req.ShowingID)
	if err != nil {
		if errors.Is(err, services.ErrShowingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "showing not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record click"})
		}
		return
	}
	c.Status(http.StatusOK)
}

// GetUserFeedInfo bundles the viewer's admin flag and pending
// collaboration invitations for the feed page.
// GET /api/feed/info
func (h *FeedHandler) GetUserFeedInfo(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()

	isAdmin, err := h.userService.IsAdmin(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed info"})
		return
	}
	postCollabs, err := h.collabService.GetPostCollabRequests(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed info"})
		return
	}
	adCollabs, err := h.collabService.GetAdCollabRequests(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed info"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin":      isAdmin,
		"postColabs": postCollabs,
		"adColabs":   adCollabs,
	})
}

// UpdateCollab accepts or rejects a pending collaboration invitation.
// POST /api/collabs
func (h *FeedHandler) UpdateCollab(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req struct {
		Type     string `json:"type" binding:"required,oneof=post ad"`
		ID       string `json:"id" binding:"required"`
		Accepted *bool  `json:"accepted" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	kind := services.CollabKind(req.Type)
	var err error
	if *req.Accepted {
		err = h.collabService.Accept(c.Request.Context(), kind, req.ID, userID)
	} else {
		err = h.collabService.Reject(c.Request.Context(), kind, req.ID, userID)
	}
	if err != nil {
		if errors.Is(err, services.ErrCollabNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending collaboration"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update collaboration"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
