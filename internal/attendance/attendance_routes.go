package attendance

import (
	"github.com/kajugadaniels/eps-attendify-api/internal/middleware"
	"github.com/kajugadaniels/eps-attendify-api/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.Mark)
		attendances.POST("/batch", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.MarkBatch)
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetToday)
		attendances.GET("/present-count", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetPresentCount)
	}
}
