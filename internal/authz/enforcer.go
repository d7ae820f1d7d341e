package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (r.obj == p.obj || p.obj == "*") && (r.act == p.act || p.act == "*")
`

// policies grants resource:action pairs per role. Roles are the fixed
// ADMIN/HR/MANAGER/EMPLOYEE set carried on the User row; role inheritance
// keeps the table short (ADMIN > HR > MANAGER > EMPLOYEE).
var policies = [][]string{
	{RoleAdmin, "*", "*"},

	{RoleHR, "organization", "*"},
	{RoleHR, "employee", "*"},
	{RoleHR, "attendance", "*"},
	{RoleHR, "leave", "*"},
	{RoleHR, "payroll", "*"},
	{RoleHR, "settlement", "*"},
	{RoleHR, "loan", "*"},
	{RoleHR, "providentfund", "*"},
	{RoleHR, "grievance", "*"},
	{RoleHR, "recruitment", "*"},
	{RoleHR, "training", "*"},
	{RoleHR, "performance", "*"},
	{RoleHR, "document", "*"},

	{RoleManager, "leave", "approve"},
	{RoleManager, "attendance", "read"},
	{RoleManager, "performance", "create"},
	{RoleManager, "performance", "update"},

	{RoleEmployee, "organization", "read"},
	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "attendance", "create"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "payroll", "read"},
	{RoleEmployee, "settlement", "read"},
	{RoleEmployee, "loan", "read"},
	{RoleEmployee, "loan", "create"},
	{RoleEmployee, "providentfund", "read"},
	{RoleEmployee, "grievance", "read"},
	{RoleEmployee, "grievance", "create"},
	{RoleEmployee, "recruitment", "read"},
	{RoleEmployee, "training", "read"},
	{RoleEmployee, "performance", "read"},
	{RoleEmployee, "document", "read"},
}

var roleInheritance = [][]string{
	{RoleHR, RoleManager},
	{RoleManager, RoleEmployee},
	{RoleAdmin, RoleHR},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInheritance {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
