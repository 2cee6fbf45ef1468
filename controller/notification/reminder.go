package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/controller/respond"
	"salescrm/dto"
	"salescrm/middleware"
	"salescrm/services"
)

func GetReminders(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	reminders, summary, err := reg.Reminders.GetReminders(c.Request.Context(), user, reg.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RemindersResponse{Reminders: reminders, Summary: summary})
}

func DismissReminder(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")
	if err := reg.Dismissals.DismissOne(c.Request.Context(), user, id, reg.Now()); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder dismissed", "id": id})
}

func DismissAllReminders(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	count, err := reg.Dismissals.DismissAll(c.Request.Context(), user, reg.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All reminders dismissed", "dismissedCount": count})
}
