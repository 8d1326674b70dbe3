package auth

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
	group := r.Group("/auth")
	{
		group.POST("/login",
			middleware.RateLimitByIP(1, 5),
			handler.Login,
		)
		group.POST("/refresh",
			middleware.RateLimitByIP(1, 5),
			handler.RefreshToken,
		)
		group.POST("/logout", handler.Logout)

		group.GET("/me",
			middleware.AuthMiddleware(),
			middleware.ContextLogger(logger),
			handler.Me,
		)

		// Account creation is an admin operation.
		group.POST("/register",
			middleware.AuthMiddleware(),
			middleware.ContextLogger(logger),
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "user", "create"),
			handler.Register,
		)
	}
}
