package field

import (
	"github.com/kajugadaniels/eps-attendify-api/internal/middleware"
	"github.com/kajugadaniels/eps-attendify-api/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	fields := r.Group("/fields")
	fields.Use(middleware.AuthMiddleware())
	{
		fields.GET("", middleware.RBACAuthorize(rbacService, "field", "read"), h.GetAll)
		fields.POST("", middleware.RBACAuthorize(rbacService, "field", "create"), h.Create)
		fields.GET("/:id", middleware.RBACAuthorize(rbacService, "field", "read"), h.GetById)
		fields.PUT("/:id", middleware.RBACAuthorize(rbacService, "field", "update"), h.Update)
		fields.DELETE("/:id", middleware.RBACAuthorize(rbacService, "field", "delete"), h.Delete)
	}
}
