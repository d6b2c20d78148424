package route

import (
	"github.com/gin-gonic/gin"
	"github.com/rithvisal/inksign/internal/controller"
	"github.com/rithvisal/inksign/internal/middleware"
)

func V1_Users(r *gin.RouterGroup, userController *controller.UserController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/users")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("/me", userController.Me)
	}
}
