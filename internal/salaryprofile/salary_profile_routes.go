package salaryprofile

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
	profiles := r.Group("/salary-profiles")
	profiles.Use(middleware.AuthMiddleware())
	profiles.Use(middleware.ContextLogger(logger))
	{
		profiles.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary_profile", "read"),
			handler.GetById,
		)

		profiles.GET("/employees/:employee_id/active",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary_profile", "read"),
			handler.GetActiveByEmployee,
		)

		profiles.GET("/employees/:employee_id/history",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary_profile", "read"),
			handler.GetHistoryByEmployee,
		)

		profiles.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_profile", "create"),
			handler.Create,
		)
	}
}
