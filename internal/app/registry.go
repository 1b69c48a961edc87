package app

import (
	"github.com/leanh1541989-hash/taphoa39/internal/attendance"
	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore"
	"github.com/leanh1541989-hash/taphoa39/internal/employee"
	"github.com/leanh1541989-hash/taphoa39/internal/messaging/kafka"
	"github.com/leanh1541989-hash/taphoa39/internal/middleware"
	"github.com/leanh1541989-hash/taphoa39/internal/payroll"
	"github.com/leanh1541989-hash/taphoa39/internal/schedule"
	"github.com/leanh1541989-hash/taphoa39/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	store docstore.Store,
	snapshots cache.Cache,
	rdb *redis.Client,
	broadcaster kafka.Broadcaster,
) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(store, snapshots)
	scheduleRepo := schedule.NewRepository(store, snapshots)
	timesheetRepo := timesheet.NewRepository(store, snapshots)
	payrollRepo := payroll.NewRepository(store, snapshots)
	attendanceRepo := attendance.NewRepository(store, snapshots)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeRepo, broadcaster)
	scheduleHandler := schedule.NewHandler(scheduleRepo, broadcaster)
	timesheetHandler := timesheet.NewHandler(timesheetRepo, broadcaster)
	payrollHandler := payroll.NewHandler(payrollRepo, broadcaster)
	attendanceHandler := attendance.NewHandler(attendanceRepo, broadcaster)

	// --- Routes Registration ---
	api := router.Group("/api/records")
	api.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(50, 100),
		middleware.Idempotency(rdb),
	)
	{
		employee.RegisterRoutes(api, employeeHandler)
		schedule.RegisterRoutes(api, scheduleHandler)
		timesheet.RegisterRoutes(api, timesheetHandler)
		payroll.RegisterRoutes(api, payrollHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
	}
}
