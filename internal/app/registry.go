package app

import (
	"database/sql"

	"github.com/kajugadaniels/eps-attendify-api/internal/assignment"
	"github.com/kajugadaniels/eps-attendify-api/internal/assignmentgroup"
	"github.com/kajugadaniels/eps-attendify-api/internal/attendance"
	"github.com/kajugadaniels/eps-attendify-api/internal/department"
	"github.com/kajugadaniels/eps-attendify-api/internal/employee"
	"github.com/kajugadaniels/eps-attendify-api/internal/field"
	"github.com/kajugadaniels/eps-attendify-api/internal/messaging/kafka"
	"github.com/kajugadaniels/eps-attendify-api/internal/rbac"
	"github.com/kajugadaniels/eps-attendify-api/internal/shared/counter"
	"github.com/kajugadaniels/eps-attendify-api/internal/tagresolver"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	fieldRepo := field.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	groupRepo := assignmentgroup.NewRepository(gormDB)
	resolverRepo := tagresolver.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo)
	fieldService := field.NewService(db, fieldRepo)
	employeeService := employee.NewService(db, employeeRepo)
	assignmentService := assignment.NewService(db, assignmentRepo)
	groupService := assignmentgroup.NewService(
		db, groupRepo, assignmentRepo, assignmentService, counterRepo, outboxRepo,
	)
	resolverService := tagresolver.NewService(resolverRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, resolverService, outboxRepo)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	fieldHandler := field.NewHandler(fieldService)
	employeeHandler := employee.NewHandler(employeeService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	groupHandler := assignmentgroup.NewHandler(groupService)
	attendanceHandler := attendance.NewHandler(attendanceService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler, rbacService)
		field.RegisterRoutes(api, fieldHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		assignmentgroup.RegisterRoutes(api, groupHandler, rbacService)
		assignment.RegisterRoutes(api, assignmentHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
	}

	return nil
}
