package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	att := r.Group("/attendance")
	{
		att.GET("", h.GetAll)
		att.GET("/filter", h.Filter)
		att.POST("", h.Create)
		att.PUT("/batch", h.SaveBatch)
		att.PUT("/:id", h.Update)
		att.DELETE("/:id", h.Delete)
	}
}
