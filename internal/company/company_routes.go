package company

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
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	companies.Use(middleware.ContextLogger(logger))
	{
		companies.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "company", "read"),
			handler.GetAll,
		)

		companies.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "company", "read"),
			handler.GetById,
		)

		companies.POST("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "company", "create"),
			handler.Onboard,
		)

		companies.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "company", "update"),
			handler.Update,
		)
	}
}
