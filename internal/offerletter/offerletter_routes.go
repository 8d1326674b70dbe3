package offerletter

import (
	"vthr/internal/middleware"
	"vthr/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	offers := r.Group("/offer-letters")
	offers.Use(middleware.AuthMiddleware())
	offers.Use(middleware.ContextLogger(logger))
	{
		offers.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "offerletter", "read"),
			handler.GetAll,
		)

		offers.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "offerletter", "read"),
			handler.GetById,
		)

		offers.GET("/:id/document",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "offerletter", "read"),
			handler.Download,
		)

		offers.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "offerletter", "create"),
			handler.Create,
		)

		offers.POST("/:id/regenerate",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "offerletter", "create"),
			handler.Regenerate,
		)

		offers.PUT("/:id/status",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "offerletter", "update"),
			handler.UpdateStatus,
		)

		offers.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "offerletter", "delete"),
			handler.Delete,
		)
	}
}
