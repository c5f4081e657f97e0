package assignmentgroup

import (
	"github.com/kajugadaniels/eps-attendify-api/internal/middleware"
	"github.com/kajugadaniels/eps-attendify-api/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	groups := r.Group("/assignment-groups")
	groups.Use(middleware.AuthMiddleware())
	{
		groups.GET("", middleware.RBACAuthorize(rbacService, "assignment_group", "read"), h.GetAll)
		groups.POST("", middleware.RBACAuthorize(rbacService, "assignment_group", "create"), h.Create)
		groups.GET("/:id", middleware.RBACAuthorize(rbacService, "assignment_group", "read"), h.GetByID)
		groups.PUT("/:id", middleware.RBACAuthorize(rbacService, "assignment_group", "update"), h.Update)
		groups.POST("/:id/end", middleware.RBACAuthorize(rbacService, "assignment_group", "update"), h.End)
		groups.POST("/:id/end/preview", middleware.RBACAuthorize(rbacService, "assignment_group", "read"), h.PreviewEnd)
		groups.DELETE("/:id", middleware.RBACAuthorize(rbacService, "assignment_group", "delete"), h.Delete)
	}
}
