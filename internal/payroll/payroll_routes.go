package payroll

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", h.GetAll)
		payrolls.GET("/period/:period", h.GetByPeriod)
		payrolls.PUT("", h.Save)
		payrolls.PUT("/batch", h.SaveBatch)
		payrolls.DELETE("/:id", h.Delete)
	}
}
