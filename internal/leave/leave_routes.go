package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leave := r.Group("/leave")
	{
		leave.POST("/request", handler.Submit)
		leave.POST("/approve/:id", handler.Approve)
		leave.POST("/reject/:id", handler.Reject)
		leave.POST("/cancel/:id", handler.Cancel)
		leave.GET("/balance/:employeeId", handler.Balance)
		leave.GET("/employee/:employeeId", handler.GetByEmployee)
		leave.GET("/all", handler.GetAll)
	}
}
