package sales

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/controller/respond"
	"salescrm/dto"
	"salescrm/middleware"
	"salescrm/model"
	"salescrm/services"
)

func SalesController(router *gin.RouterGroup, reg *services.Registry) {
	routes := router.Group("/sales", middleware.AccessTokenMiddleware(reg.JWTSecret))
	{
		routes.GET("/follow-ups/today", func(c *gin.Context) {
			TodayFollowUps(c, reg)
		})
		routes.GET("/follow-ups/overdue", func(c *gin.Context) {
			OverdueFollowUps(c, reg)
		})
		routes.GET("", func(c *gin.Context) {
			ListSalesEntries(c, reg)
		})
		routes.POST("", func(c *gin.Context) {
			CreateSalesEntry(c, reg)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetSalesEntry(c, reg)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateSalesEntry(c, reg)
		})
		routes.DELETE("/:id", middleware.RequireRoles(model.RoleAdmin, model.RoleManager), func(c *gin.Context) {
			DeleteSalesEntry(c, reg)
		})
	}
}

func CreateSalesEntry(c *gin.Context, reg *services.Registry) {
	var request dto.CreateSalesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	lead := request.ToModel()
	if err := reg.Sales.CreateLead(c.Request.Context(), user, &lead, reg.Now()); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sales entry created successfully", "data": lead})
}

func GetSalesEntry(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	lead, err := reg.Sales.GetLead(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": lead})
}

func UpdateSalesEntry(c *gin.Context, reg *services.Registry) {
	var request dto.UpdateSalesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	lead, err := reg.Sales.UpdateLead(c.Request.Context(), user, c.Param("id"), request.ToUpdate(), reg.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sales entry updated successfully", "data": lead})
}

func ListSalesEntries(c *gin.Context, reg *services.Registry) {
	var query dto.SalesListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	page, err := reg.Sales.ListLeads(c.Request.Context(), user, query.ToModel(), query.Page, query.Limit)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       page.Items,
		"pagination": dto.NewPagination(page.Page, page.Limit, page.Total),
	})
}

func DeleteSalesEntry(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	if err := reg.Sales.DeleteLead(c.Request.Context(), user, c.Param("id"), reg.Now()); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sales entry deleted successfully"})
}

func TodayFollowUps(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	leads, err := reg.Sales.TodayFollowUps(c.Request.Context(), user, reg.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": leads, "count": len(leads)})
}

func OverdueFollowUps(c *gin.Context, reg *services.Registry) {
	user, _ := middleware.CurrentUser(c)
	leads, err := reg.Sales.OverdueFollowUps(c.Request.Context(), user, reg.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": leads, "count": len(leads)})
}
