package leave

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
	leaves := r.Group("/leave")
	leaves.Use(middleware.AuthMiddleware())
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("/types",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_type", "read"),
			handler.GetLeaveTypes,
		)

		leaves.POST("/types",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave_type", "create"),
			handler.CreateLeaveType,
		)

		leaves.GET("/policy",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_policy", "read"),
			handler.GetPolicy,
		)

		leaves.PUT("/policy",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_policy", "update"),
			handler.UpdatePolicy,
		)

		leaves.GET("/employees/:employee_id/balances",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.GetBalances,
		)

		leaves.GET("/requests",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.GetRequests,
		)

		leaves.GET("/requests/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.GetRequestById,
		)

		leaves.POST("/requests",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave_request", "create"),
			handler.CreateRequest,
		)

		leaves.POST("/requests/:id/manager-decision",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			handler.ManagerDecision,
		)

		leaves.POST("/requests/:id/hr-decision",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			handler.HRDecision,
		)
	}
}
