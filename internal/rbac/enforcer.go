package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Caller roles resolved by the identity provider. Permission administration
// itself lives outside this service; the policy here is static.
const (
	RoleSuperuser = "superuser"
	RoleAdmin     = "admin"
	RoleStaff     = "staff"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// NewEnforcer builds the in-memory enforcer with the fixed role policy:
// superuser does everything, admin manages the workforce data and reads
// everything, staff may mark and read attendance.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{RoleSuperuser, "*", "*"},

		{RoleAdmin, "department", "*"},
		{RoleAdmin, "field", "*"},
		{RoleAdmin, "employee", "*"},
		{RoleAdmin, "assignment_group", "*"},
		{RoleAdmin, "assignment", "*"},
		{RoleAdmin, "attendance", "*"},

		{RoleStaff, "attendance", "read"},
		{RoleStaff, "attendance", "create"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	// Role hierarchy: superuser inherits admin, admin inherits staff
	if _, err := e.AddGroupingPolicy(RoleSuperuser, RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicy(RoleAdmin, RoleStaff); err != nil {
		return nil, err
	}

	return e, nil
}
