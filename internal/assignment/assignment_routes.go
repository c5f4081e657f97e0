package assignment

import (
	"github.com/kajugadaniels/eps-attendify-api/internal/middleware"
	"github.com/kajugadaniels/eps-attendify-api/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	groups := r.Group("/assignment-groups")
	groups.Use(middleware.AuthMiddleware())
	{
		groups.GET("/:id/members", middleware.RBACAuthorize(rbacService, "assignment", "read"), h.GetByGroup)
		groups.POST("/:id/members", middleware.RBACAuthorize(rbacService, "assignment", "create"), h.Enroll)
		groups.DELETE("/:id/members/:employee_id", middleware.RBACAuthorize(rbacService, "assignment", "delete"), h.Remove)
	}

	assignments := r.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware())
	{
		assignments.PATCH("/:assignment_id/status", middleware.RBACAuthorize(rbacService, "assignment", "update"), h.UpdateStatus)
	}
}
