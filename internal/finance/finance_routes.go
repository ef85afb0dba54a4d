package finance

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
	finance := r.Group("/finance")
	finance.Use(middleware.AuthMiddleware())
	finance.Use(middleware.ContextLogger(logger))
	{
		finance.GET("/entries",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "finance_entry", "read"),
			handler.GetEntries,
		)

		finance.GET("/entries/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "finance_entry", "read"),
			handler.GetEntryById,
		)

		finance.POST("/entries",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "finance_entry", "create"),
			handler.CreateEntry,
		)

		finance.DELETE("/entries/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "finance_entry", "delete"),
			handler.DeleteEntry,
		)

		finance.GET("/summary",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "finance_summary", "read"),
			handler.GetMonthlySummary,
		)
	}
}
