package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/controller/respond"
	"salescrm/dto"
	"salescrm/middleware"
	"salescrm/model"
	"salescrm/services"
)

func SignInController(router *gin.RouterGroup, reg *services.Registry) {
	routes := router.Group("/auth")
	{
		routes.POST("/signin", func(c *gin.Context) {
			Signin(c, reg)
		})
		routes.GET("/me", middleware.AccessTokenMiddleware(reg.JWTSecret), func(c *gin.Context) {
			Me(c, reg)
		})
	}
}

func Signin(c *gin.Context, reg *services.Registry) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, err := services.Authenticate(c.Request.Context(), reg.Users, request.Username, request.Password)
	if errors.Is(err, services.ErrAccessDenied) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}
	if err != nil {
		respond.Error(c, err)
		return
	}

	accessToken, err := services.CreateAccessToken(reg.JWTSecret, user, reg.JWTExpire)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login Successfully",
		"token": model.TokenResponse{
			AccessToken: accessToken,
			ExpiresIn:   int64(reg.JWTExpire.Seconds()),
		},
		"user": dto.NewUserResponse(user),
	})
}

func Me(c *gin.Context, reg *services.Registry) {
	authUser, _ := middleware.CurrentUser(c)
	user, err := services.GetUserByID(c.Request.Context(), reg.Users, authUser.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}
