package followup

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/controller/respond"
	"salescrm/dto"
	"salescrm/middleware"
	"salescrm/model"
	"salescrm/services"
)

func FollowUpController(router *gin.RouterGroup, reg *services.Registry) {
	routes := router.Group("/follow-ups", middleware.AccessTokenMiddleware(reg.JWTSecret))
	{
		routes.POST("", func(c *gin.Context) {
			CreateFollowUp(c, reg)
		})
		routes.GET("/my", func(c *gin.Context) {
			MyFollowUps(c, reg)
		})
		routes.GET("/sales/:salesEntryId", func(c *gin.Context) {
			ListFollowUps(c, reg)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetFollowUp(c, reg)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateFollowUp(c, reg)
		})
		routes.DELETE("/:id", middleware.RequireRoles(model.RoleAdmin), func(c *gin.Context) {
			DeleteFollowUp(c, reg)
		})
	}
}

func CreateFollowUp(c *gin.Context, reg *services.Registry) {
	var request dto.CreateFollowUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	f := request.ToModel()
	if err := reg.Sales.AddFollowUp(c.Request.Context(), user, &f, reg.Now()); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Follow-up added successfully", "data": f})
}

func ListFollowUps(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	items, err := reg.Sales.ListFollowUps(c.Request.Context(), user, c.Param("salesEntryId"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
}

func MyFollowUps(c *gin.Context, reg *services.Registry) {
	var query dto.MyFollowUpsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	from, before := query.Range()
	page, err := reg.Sales.MyFollowUps(c.Request.Context(), user, from, before, query.Page, query.Limit)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       page.Items,
		"pagination": dto.NewPagination(page.Page, page.Limit, page.Total),
	})
}

func GetFollowUp(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	f, err := reg.Sales.GetFollowUp(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": f})
}

func UpdateFollowUp(c *gin.Context, reg *services.Registry) {
	var request dto.UpdateFollowUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	f, err := reg.Sales.UpdateFollowUp(c.Request.Context(), user, c.Param("id"), request.ToUpdate(), reg.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Follow-up updated successfully", "data": f})
}

func DeleteFollowUp(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	if err := reg.Sales.DeleteFollowUp(c.Request.Context(), user, c.Param("id"), reg.Now()); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Follow-up deleted successfully"})
}
