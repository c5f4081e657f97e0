package employee

import (
	"github.com/kajugadaniels/eps-attendify-api/internal/middleware"
	"github.com/kajugadaniels/eps-attendify-api/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetAll)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employee", "create"), h.Create)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetById)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "update"), h.Update)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "delete"), h.Delete)
	}
}
