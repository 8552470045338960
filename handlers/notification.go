package handlers

import (
	"net/http"

	"rideshare/services/notification"
	"rideshare/services/realtime"
	"rideshare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves the in-app notification inbox and its live
// stream.
type NotificationHandler struct {
	Notifications notification.NotificationService
	Hub           *realtime.Hub
	Logger        *zap.Logger
}

func NewNotificationHandler(svc notification.NotificationService, hub *realtime.Hub, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Notifications: svc, Hub: hub, Logger: logger}
}

func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	list, err := h.Notifications.ListNotifications(c.Request.Context(), identity.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	unread := 0
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "unread": unread})
}

func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	n, err := h.Notifications.MarkRead(c.Request.Context(), identity.Email, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) StreamHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	getLogger(c).Debug("Opening notification stream", zap.String("email", identity.Email))
	h.Hub.Serve(c.Writer, c.Request, identity)
}
