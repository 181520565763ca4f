package notifications

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Handler handles notification HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new notification handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListNotifications godoc
// @Summary List notifications
// @Description Get the authenticated user's notifications, unread first.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20, max 50)"
// @Param unreadOnly query bool false "Only show unread"
// @Success 200 {object} response.PaginatedResponse{data=[]Notification}
// @Failure 401 {object} response.ErrorResponse
// @Router /notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	currentUser, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var query NotificationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_QUERY")
		return
	}

	notifications, total, err := h.repo.ListByUser(c.Request.Context(), currentUser.ID, &query)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch notifications", "FETCH_FAILED")
		return
	}

	response.Paginated(c, notifications, total, query.Limit, query.Page)
}

// GetUnreadCount godoc
// @Summary Get unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=UnreadCountResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /notifications/unread-count [get]
func (h *Handler) GetUnreadCount(c *gin.Context) {
	currentUser, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	count, err := h.repo.CountUnread(c.Request.Context(), currentUser.ID)
	if err != nil {
		response.InternalServerError(c, "Failed to count notifications", "COUNT_FAILED")
		return
	}

	response.Success(c, UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /notifications/{id}/read [patch]
func (h *Handler) MarkAsRead(c *gin.Context) {
	currentUser, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid notification ID format", "INVALID_ID")
		return
	}

	if err := h.repo.MarkAsRead(c.Request.Context(), notificationID, currentUser.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Notification not found", "NOTIFICATION_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to mark as read", "UPDATE_FAILED")
		return
	}

	response.Success(c, gin.H{"id": notificationID, "isRead": true})
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=MarkAllReadResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /notifications/read-all [patch]
func (h *Handler) MarkAllAsRead(c *gin.Context) {
	currentUser, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	count, err := h.repo.MarkAllAsRead(c.Request.Context(), currentUser.ID)
	if err != nil {
		response.InternalServerError(c, "Failed to mark all as read", "UPDATE_FAILED")
		return
	}

	response.Success(c, MarkAllReadResponse{MarkedCount: count})
}

// RegisterToken godoc
// @Summary Register an FCM device token
// @Description Register or reassign a device token for push notifications.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterTokenRequest true "Device token"
// @Success 201 {object} response.SuccessResponse{data=DeviceToken}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /notifications/token [post]
func (h *Handler) RegisterToken(c *gin.Context) {
	currentUser, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_REQUEST")
		return
	}

	token := &DeviceToken{
		UserID:   currentUser.ID,
		Token:    req.Token,
		Platform: req.Platform,
	}
	if err := h.repo.SaveDeviceToken(c.Request.Context(), token); err != nil {
		response.InternalServerError(c, "Failed to register device token", "TOKEN_FAILED")
		return
	}

	response.Created(c, token)
}
