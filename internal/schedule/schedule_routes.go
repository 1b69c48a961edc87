package schedule

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	schedules := r.Group("/work-schedules")
	{
		schedules.GET("", h.GetAll)
		schedules.GET("/filter", h.Filter)
		schedules.PUT("", h.Save)
	}
}
