package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// casbinModel is the RBAC model with role inheritance: admin inherits every
// hr permission, hr inherits every employee permission.
const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies is the fixed permission table. Roles are seeded by migration and
// carried in the JWT; there is no runtime role editing.
var policies = [][3]string{
	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "payroll", "read"},

	{RoleHR, "employee", "create"},
	{RoleHR, "employee", "update"},
	{RoleHR, "employee", "delete"},
	{RoleHR, "attendance", "create"},
	{RoleHR, "attendance", "delete"},
	{RoleHR, "leave", "approve"},
	{RoleHR, "leave", "delete"},
	{RoleHR, "payroll", "create"},
	{RoleHR, "payroll", "update"},
	{RoleHR, "offerletter", "read"},
	{RoleHR, "offerletter", "create"},
	{RoleHR, "offerletter", "update"},

	{RoleAdmin, "payroll", "delete"},
	{RoleAdmin, "offerletter", "delete"},
	{RoleAdmin, "user", "create"},
	{RoleAdmin, "rbac", "read"},
}

var roleInheritance = [][2]string{
	{RoleAdmin, RoleHR},
	{RoleHR, RoleEmployee},
}

type Service interface {
	Authorize(role, resource, action string) (bool, error)
	PermissionsFor(role string) ([][]string, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("rbac policy %v: %w", p, err)
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("rbac grouping %v: %w", g, err)
		}
	}

	l.Info("rbac policy loaded",
		zap.Int("policies", len(policies)),
		zap.Int("role_links", len(roleInheritance)),
	)

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Authorize(role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}
	return allowed, nil
}

// PermissionsFor lists the effective permissions of a role, inherited ones
// included.
func (s *service) PermissionsFor(role string) ([][]string, error) {
	return s.enforcer.GetImplicitPermissionsForUser(role)
}
