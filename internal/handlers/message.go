package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialgram/internal/auth"
	"socialgram/internal/services"
)

// MessageHandler handles chats, groups, and messages
type MessageHandler struct {
	messageService *services.MessageService
	userService    *services.UserService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *services.MessageService, userService *services.UserService) *MessageHandler {
	return &MessageHandler{messageService: messageService, userService: userService}
}

// GetChat finds the direct chat between the caller and another user,
// creating it on first contact.
// POST /api/messages/chat
func (h *MessageHandler) GetChat(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	otherID, err := h.userService.GetUserIDByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open chat"})
		}
		return
	}
	if otherID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot chat with yourself"})
		return
	}

	groupID, found, err := h.messageService.FindChat(c.Request.Context(), userID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open chat"})
		return
	}
	if !found {
		groupID, err = h.messageService.CreateChat(c.Request.Context(), userID, otherID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open chat"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"groupID": groupID})
}

// CreateGroup creates a named group containing the caller and the listed
// users.
// POST /api/messages/groups
func (h *MessageHandler) CreateGroup(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req struct {
		Name      string   `json:"name" binding:"required"`
		Usernames []string `json:"usernames" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	memberIDs := []string{userID}
	for _, username := range req.Usernames {
		id, err := h.userService.GetUserIDByUsername(c.Request.Context(), username)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found", "username": username})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create group"})
			}
			return
		}
		memberIDs = append(memberIDs, id)
	}

	groupID, err := h.messageService.CreateGroup(c.Request.Context(), req.Name, memberIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groupID": groupID})
}

// ListGroups lists the caller's message groups.
// GET /api/messages/groups
func (h *MessageHandler) ListGroups(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	groups, err := h.messageService.ListGroups(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroupInfo returns a group's name and whether the caller belongs to it.
// GET /api/messages/groups/:id
func (h *MessageHandler) GetGroupInfo(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	groupID := c.Param("id")

	name, err := h.messageService.GroupName(c.Request.Context(), groupID)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load group"})
		}
		return
	}

	member, err := h.messageService.IsMember(c.Request.Context(), userID, groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groupName": name, "isInGroup": member})
}

// AddMember adds a user to a group by username.
// POST /api/messages/groups/:id/members
func (h *MessageHandler) AddMember(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	newMemberID, err := h.userService.GetUserIDByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		}
		return
	}

	err = h.messageService.AddMember(c.Request.Context(), c.Param("id"), newMemberID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case errors.Is(err, services.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "already a member"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"successful": true})
}

// SendMessage appends a message to a group on behalf of the caller.
// POST /api/messages/groups/:id/messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	sentAt, err := h.messageService.SendMessage(c.Request.Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrNotMember) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this group"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"time": sentAt})
}

// GetMessages returns a group's message history. Only members may read.
// GET /api/messages/groups/:id/messages
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	groupID := c.Param("id")

	member, err := h.messageService.IsMember(c.Request.Context(), userID, groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this group"})
		return
	}

	messages, err := h.messageService.GetMessages(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
