package todo

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	todos := r.Group("/todos")
	{
		todos.POST("", handler.Create)
		todos.GET("", handler.List)
		todos.PUT("/:id", handler.Update)
		todos.DELETE("/:id", handler.Delete)
	}
}
