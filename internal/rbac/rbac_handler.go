package rbac

import (
	"net/http"

	"vthr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// MyPermissions returns the effective permission list for the caller's role.
func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")
	if role == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}

	perms, err := h.service.PermissionsFor(role)
	if err != nil {
		h.logger.Error("list permissions failed", zap.String("role", role), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "could not list permissions", nil)
		return
	}

	rules := make([]gin.H, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		rules = append(rules, gin.H{"resource": p[1], "action": p[2]})
	}

	response.Success(c, http.StatusOK, gin.H{"role": role, "permissions": rules}, nil)
}
