package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/streamseed/streamseed-api/internal/dto"
	"github.com/streamseed/streamseed-api/internal/errors"
	"github.com/streamseed/streamseed-api/internal/middleware"
	"github.com/streamseed/streamseed-api/internal/services"
	"github.com/streamseed/streamseed-api/internal/utils"
)

// InboxHandler handles direct messages and notifications
type InboxHandler struct {
	inboxService *services.InboxService
}

// NewInboxHandler creates a new InboxHandler
func NewInboxHandler(inboxService *services.InboxService) *InboxHandler {
	return &InboxHandler{inboxService: inboxService}
}

// SendMessageRequest represents the message request body
type SendMessageRequest struct {
	ReceiverID uint64 `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// SendMessage handles POST /api/messages
func (h *InboxHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	message, err := h.inboxService.SendMessage(services.SendMessageInput{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		h.respondInboxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": dto.ToMessageDTO(*message)})
}

// ListConversation handles GET /api/messages/:userID
func (h *InboxHandler) ListConversation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	otherID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid user ID")
		return
	}

	params := utils.GetPaginationParams(c)

	messages, total, err := h.inboxService.ListConversation(userID, otherID, params.Offset, params.Limit)
	if err != nil {
		h.respondInboxError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": dto.ToMessageDTOs(messages),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// MarkMessageRead handles PATCH /api/messages/read/:id. Only the receiver
// can mark a message read.
func (h *InboxHandler) MarkMessageRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid message ID")
		return
	}

	message, err := h.inboxService.MarkMessageRead(userID, messageID)
	if err != nil {
		h.respondInboxError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": dto.ToMessageDTO(*message)})
}

// ListNotifications handles GET /api/notifications
func (h *InboxHandler) ListNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	notifications, total, err := h.inboxService.ListNotifications(userID, params.Offset, params.Limit)
	if err != nil {
		h.respondInboxError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": dto.ToNotificationDTOs(notifications),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// MarkNotificationRead handles PATCH /api/notifications/:id/read
func (h *InboxHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid notification ID")
		return
	}

	notification, err := h.inboxService.MarkNotificationRead(userID, notificationID)
	if err != nil {
		h.respondInboxError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": dto.ToNotificationDTO(*notification)})
}

func (h *InboxHandler) respondInboxError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, services.ErrRecipientNotFound):
		errors.NotFound(c, "Recipient not found")
	case stderrors.Is(err, services.ErrMessageNotFound):
		errors.NotFound(c, "Message not found")
	case stderrors.Is(err, services.ErrNotificationNotFound):
		errors.NotFound(c, "Notification not found")
	case stderrors.Is(err, services.ErrMessageToSelf):
		errors.BadRequest(c, "Cannot send a message to yourself")
	case stderrors.Is(err, services.ErrMessageContentMissing):
		errors.BadRequest(c, "Message content is required")
	default:
		errors.InternalError(c, "")
	}
}
