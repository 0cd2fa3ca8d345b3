package invoice

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	invoices := r.Group("/invoices")
	{
		invoices.POST("/create", handler.Create)
		invoices.GET("/list", handler.List)
		invoices.PATCH("/update-status/:id", handler.UpdateStatus)
		invoices.POST("/send-reminder/:id", handler.SendReminder)
	}
}
