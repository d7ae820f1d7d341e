package authz_test

import (
	"testing"

	"go-hrm/internal/authz"

	"github.com/stretchr/testify/assert"
)

func TestScopeKind_String(t *testing.T) {
	assert.Equal(t, "all", authz.ScopeAll.String())
	assert.Equal(t, "department", authz.ScopeDepartment.String())
	assert.Equal(t, "self", authz.ScopeSelf.String())
}

func TestResolveScope_ByRole(t *testing.T) {
	employeeID := "e1"
	departmentID := "d1"

	assert.Equal(t, authz.ScopeAll, authz.ResolveScope(authz.RoleAdmin, employeeID, departmentID).Kind)
	assert.Equal(t, authz.ScopeAll, authz.ResolveScope(authz.RoleHR, employeeID, departmentID).Kind)

	manager := authz.ResolveScope(authz.RoleManager, employeeID, departmentID)
	assert.Equal(t, authz.ScopeDepartment, manager.Kind)
	assert.Equal(t, departmentID, manager.DepartmentID)

	self := authz.ResolveScope(authz.RoleEmployee, employeeID, departmentID)
	assert.Equal(t, authz.ScopeSelf, self.Kind)
	assert.Equal(t, employeeID, self.EmployeeID)
}
