package license

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	licenses := r.Group("/licenses")
	{
		licenses.POST("", handler.Create)
		licenses.GET("", handler.List)
		licenses.GET("/alerts", handler.Alerts)
		licenses.GET("/expiring", handler.StatusCounts)
		licenses.DELETE("/:id", handler.Delete)
	}
}
