package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carwash-api/internal/application/service"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/presentation/http/dto/response"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles listing the caller's role-targeted notifications
func (h *NotificationHandler) List(c *gin.Context) {
	role, err := enum.ParseRole(GetUserRole(c))
	if err != nil {
		response.Forbidden(c, "Access denied")
		return
	}

	unreadOnly := c.Query("unread") == "true"
	result, err := h.notificationService.ListForRole(c.Request.Context(), role, unreadOnly, bindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Notifications retrieved successfully", result)
}

// MarkReadInput selects the notifications to mark as read
type MarkReadInput struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// MarkRead handles marking notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var input MarkReadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), input.IDs); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notifications marked as read", nil)
}

// ListByOrder handles listing an order's client-facing notifications
func (h *NotificationHandler) ListByOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "orderId")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	notifications, err := h.notificationService.ListForOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notifications retrieved successfully", notifications)
}
