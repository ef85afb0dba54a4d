package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/middleware"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	payrolls := r.Group("/payroll")
	payrolls.Use(middleware.AuthMiddleware())
	payrolls.Use(middleware.ContextLogger(logger))
	{
		payrolls.GET("/runs",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAllRuns,
		)

		payrolls.GET("/runs/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetRunById,
		)

		payrolls.GET("/runs/:id/breakdown",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetRunBreakdown,
		)

		payrolls.GET("/runs/:id/register",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.ExportRegister,
		)

		payrolls.POST("/runs",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.RunPayroll,
		)

		payrolls.POST("/runs/:id/approve",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			middleware.Idempotency(rdb),
			handler.Approve,
		)

		payrolls.POST("/runs/:id/pay",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			middleware.Idempotency(rdb),
			handler.MarkPaid,
		)

		payrolls.POST("/runs/:id/cancel",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			handler.Cancel,
		)

		payrolls.GET("/settings",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll_settings", "read"),
			handler.GetSettings,
		)

		payrolls.PUT("/settings",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll_settings", "update"),
			handler.UpdateSettings,
		)

		payrolls.GET("/tax-slabs",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll_settings", "read"),
			handler.ListTaxSlabs,
		)

		payrolls.PUT("/tax-slabs",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll_settings", "update"),
			handler.ReplaceTaxSlabs,
		)
	}
}
