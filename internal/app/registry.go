package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/attendance"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/company"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/employee"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/finance"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/leave"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/messaging/kafka"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/payroll"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/rbac"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/rbac/infra"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/salaryprofile"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	componentRepo := salarycomponent.NewRepository(gormDB)
	profileRepo := salaryprofile.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	payrollSettingsRepo := payroll.NewSettingsRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	financeRepo := finance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	pdfDir := os.Getenv("PAYSLIP_PDF_DIR")
	if pdfDir == "" {
		pdfDir = filepath.Join("storage", "payslips")
	}

	componentService := salarycomponent.NewService(db, componentRepo)
	profileService := salaryprofile.NewService(db, profileRepo)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		payrollSettingsRepo,
		counterRepo,
		outboxRepo,
		rdb,
		componentRepo,
		profileRepo,
		pdfDir,
	)
	leaveService := leave.NewService(db, leaveRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo)
	financeService := finance.NewService(db, financeRepo)
	companyService := company.NewService(db, companyRepo, []company.Seeder{
		componentService,
		payrollService,
		leaveService,
	})

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	componentHandler := salarycomponent.NewHandler(componentService)
	profileHandler := salaryprofile.NewHandler(profileService)
	payrollHandler := payroll.NewHandler(payrollService)
	leaveHandler := leave.NewHandler(leaveService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	financeHandler := finance.NewHandler(financeService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		salarycomponent.RegisterRoutes(api, componentHandler, rbacService, logger)
		salaryprofile.RegisterRoutes(api, profileHandler, rbacService, logger)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, logger)
		finance.RegisterRoutes(api, financeHandler, rbacService, logger)
	}

	rbac.RegisterRoutes(router, rbacHandler)

	return nil
}
