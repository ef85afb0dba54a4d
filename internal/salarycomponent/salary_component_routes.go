package salarycomponent

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
	components := r.Group("/salary-components")
	components.Use(middleware.AuthMiddleware())
	components.Use(middleware.ContextLogger(logger))
	{
		components.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary_component", "read"),
			handler.GetAll,
		)

		components.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary_component", "read"),
			handler.GetById,
		)

		components.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_component", "create"),
			handler.Create,
		)

		components.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_component", "update"),
			handler.Update,
		)

		components.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "salary_component", "delete"),
			handler.Delete,
		)
	}
}
