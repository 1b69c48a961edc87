package timesheet

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	sheets := r.Group("/time-sheets")
	{
		sheets.GET("", h.GetAll)
		sheets.POST("", h.Create)
	}
}
