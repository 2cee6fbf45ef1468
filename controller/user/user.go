package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/controller/respond"
	"salescrm/dto"
	"salescrm/middleware"
	"salescrm/model"
	"salescrm/services"
)

// UserController mounts staff account management. Every route is admin only.
func UserController(router *gin.RouterGroup, reg *services.Registry) {
	routes := router.Group("/auth/users",
		middleware.AccessTokenMiddleware(reg.JWTSecret),
		middleware.RequireRoles(model.RoleAdmin))
	{
		routes.POST("", func(c *gin.Context) {
			CreateUser(c, reg)
		})
		routes.GET("", func(c *gin.Context) {
			ListUsers(c, reg)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateUser(c, reg)
		})
	}
}

func CreateUser(c *gin.Context, reg *services.Registry) {
	var request dto.CreateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.CreateUser(c.Request.Context(), reg.Users, request.ToNewUser(), reg.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    dto.NewUserResponse(user),
	})
}

func ListUsers(c *gin.Context, reg *services.Registry) {
	users, err := services.ListUsers(c.Request.Context(), reg.Users)
	if err != nil {
		respond.Error(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

func UpdateUser(c *gin.Context, reg *services.Registry) {
	var request dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := services.UpdateUser(c.Request.Context(), reg.Users, c.Param("id"), request.ToUpdate())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}
