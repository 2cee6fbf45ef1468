package main

import (
	"salescrm/connection"
	"salescrm/logs"

	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	if err := connection.StartServer(); err != nil {
		logs.Log.WithError(err).Fatal("server stopped")
	}
}
