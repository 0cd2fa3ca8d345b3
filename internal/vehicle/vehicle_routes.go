package vehicle

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", handler.Upsert)
		vehicles.GET("", handler.List)
		vehicles.GET("/:id", handler.Get)
		vehicles.PUT("/:id", handler.Update)
		vehicles.DELETE("/:id", handler.Delete)
		vehicles.POST("/:id/visit", handler.RecordVisit)
		vehicles.GET("/expirations/upcoming", handler.UpcomingExpirations)
		vehicles.POST("/expirations/notify", handler.NotifyExpirations)
	}
}
