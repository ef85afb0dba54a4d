package attendance

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/middleware"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	records := r.Group("/attendance")
	records.Use(middleware.AuthMiddleware())
	records.Use(middleware.ContextLogger(logger))
	{
		records.POST("/clock-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.ClockIn,
		)

		records.POST("/clock-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.ClockOut,
		)

		records.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetDay,
		)

		records.GET("/employees/:employee_id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetEmployeeRange,
		)

		// Direct ingestion path for gateways that POST instead of producing
		// to the punch topic.
		records.POST("/punches",
			middleware.RateLimitByUser(10, 30),
			middleware.RBACAuthorize(rbacService, "attendance_punch", "create"),
			handler.IngestPunch,
		)
	}
}
