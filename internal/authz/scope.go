package authz

import "gorm.io/gorm"

type ScopeKind int

const (
	// ScopeAll sees every row.
	ScopeAll ScopeKind = iota
	// ScopeDepartment sees rows for employees in the actor's department.
	ScopeDepartment
	// ScopeSelf sees only the actor's own rows.
	ScopeSelf
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeDepartment:
		return "department"
	case ScopeSelf:
		return "self"
	default:
		return "all"
	}
}

// Scope is the access descriptor consumed uniformly by query builders,
// replacing per-view role branching.
type Scope struct {
	Kind         ScopeKind
	EmployeeID   string
	DepartmentID string
}

// Apply narrows a query on a table that carries employee_id. Department
// scoping joins through the employees table.
func (s Scope) Apply(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch s.Kind {
		case ScopeSelf:
			return db.Where(column+" = ?", s.EmployeeID)
		case ScopeDepartment:
			return db.Where(
				column+" IN (SELECT id FROM employees WHERE department_id = ?)",
				s.DepartmentID,
			)
		default:
			return db
		}
	}
}

// ResolveScope maps a role to its read scope. Managers see their
// department, employees see themselves, admin and HR see everything.
func ResolveScope(role, employeeID, departmentID string) Scope {
	switch role {
	case RoleAdmin, RoleHR:
		return Scope{Kind: ScopeAll}
	case RoleManager:
		return Scope{Kind: ScopeDepartment, EmployeeID: employeeID, DepartmentID: departmentID}
	default:
		return Scope{Kind: ScopeSelf, EmployeeID: employeeID}
	}
}
