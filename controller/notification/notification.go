package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salescrm/controller/respond"
	"salescrm/dto"
	"salescrm/middleware"
	"salescrm/model"
	"salescrm/services"
)

func NotificationController(router *gin.RouterGroup, reg *services.Registry) {
	routes := router.Group("/notifications", middleware.AccessTokenMiddleware(reg.JWTSecret))
	{
		routes.GET("", func(c *gin.Context) {
			ListNotifications(c, reg)
		})
		routes.GET("/unread-count", func(c *gin.Context) {
			UnreadCount(c, reg)
		})
		routes.GET("/reminders", func(c *gin.Context) {
			GetReminders(c, reg)
		})
		routes.PUT("/reminders/dismiss-all", func(c *gin.Context) {
			DismissAllReminders(c, reg)
		})
		routes.PUT("/reminders/:id/dismiss", func(c *gin.Context) {
			DismissReminder(c, reg)
		})
		routes.PUT("/read-all", func(c *gin.Context) {
			MarkAllAsRead(c, reg)
		})
		routes.PUT("/:id/read", func(c *gin.Context) {
			MarkAsRead(c, reg)
		})
		routes.DELETE("/clear-read", func(c *gin.Context) {
			ClearRead(c, reg)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteNotification(c, reg)
		})
		routes.POST("", middleware.RequireRoles(model.RoleAdmin), func(c *gin.Context) {
			CreateNotification(c, reg)
		})
		routes.POST("/generate-overdue", middleware.RequireRoles(model.RoleAdmin), func(c *gin.Context) {
			GenerateOverdue(c, reg)
		})
	}
}

func ListNotifications(c *gin.Context, reg *services.Registry) {
	var query dto.NotificationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	page, err := reg.Notifications.List(c.Request.Context(), user, query.Page, query.Limit, query.IsRead, query.Type)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NotificationListResponse{
		Data:        page.Items,
		UnreadCount: page.UnreadCount,
		Pagination:  dto.NewPagination(page.Page, page.Limit, page.Total),
	})
}

func UnreadCount(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	count, err := reg.Notifications.UnreadCount(c.Request.Context(), user)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// MarkAsRead accepts a notification id or, for derived reminders, a lead id.
func MarkAsRead(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	n, err := reg.Notifications.MarkRead(c.Request.Context(), user, c.Param("id"), reg.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if n == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Reminder dismissed", "id": c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read", "data": n})
}

// MarkAllAsRead also dismisses the caller's reminders unless
// dismissReminders=false is passed.
func MarkAllAsRead(c *gin.Context, reg *services.Registry) {
	dismiss := true
	if raw := c.Query("dismissReminders"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dismissReminders value"})
			return
		}
		dismiss = v
	}

	user, _ := middleware.CurrentUser(c)
	result, err := reg.Notifications.MarkAllRead(c.Request.Context(), user, reg.Now(), dismiss)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "All notifications marked as read",
		"markedCount":    result.MarkedCount,
		"dismissedCount": result.DismissedCount,
	})
}

func DeleteNotification(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	if err := reg.Notifications.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

func ClearRead(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	count, err := reg.Notifications.ClearRead(c.Request.Context(), user)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Read notifications cleared", "deletedCount": count})
}

func CreateNotification(c *gin.Context, reg *services.Registry) {
	var request dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	n := request.ToModel()
	if err := reg.Notifications.Create(c.Request.Context(), &n, reg.Now()); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Notification created", "data": n})
}

func GenerateOverdue(c *gin.Context, reg *services.Registry) {
	created, err := reg.Notifier.Run(c.Request.Context(), reg.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Overdue reminders generated", "createdCount": created})
}
