package archive

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	docs := r.Group("/archive/documents")
	{
		docs.POST("", handler.Register)
		docs.GET("/archived", handler.ListArchived)
		docs.POST("/:id/unarchive", handler.Unarchive)
		docs.DELETE("/:id", handler.Delete)
	}
}
