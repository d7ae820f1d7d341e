package organization

type CreateNodeRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	ParentID string `json:"parent_id"`
}

type UpdateNodeRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

type NodeResponse struct {
	ID       string `json:"id"`
	Level    string `json:"level"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	ParentID string `json:"parent_id,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Option is the {id, name} pair returned by the cascade endpoints that
// populate dependent selection fields.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateDesignationRequest struct {
	Title        string `json:"title" binding:"required"`
	Code         string `json:"code" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Level        int    `json:"level"`
	MinSalary    string `json:"min_salary"`
	MaxSalary    string `json:"max_salary"`
}

type UpdateDesignationRequest struct {
	Title     string `json:"title" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Level     int    `json:"level"`
	MinSalary string `json:"min_salary"`
	MaxSalary string `json:"max_salary"`
	IsActive  *bool  `json:"is_active"`
}

type DesignationResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Code         string `json:"code"`
	DepartmentID string `json:"department_id"`
	Level        int    `json:"level"`
	MinSalary    string `json:"min_salary"`
	MaxSalary    string `json:"max_salary"`
	IsActive     bool   `json:"is_active"`
}

// Chain carries one selected node id per level, root first. Empty entries are
// allowed below the deepest level the caller assigns.
type Chain struct {
	GroupID       string `json:"group_id"`
	CompanyUnitID string `json:"company_unit_id"`
	DivisionID    string `json:"division_id"`
	DepartmentID  string `json:"department_id"`
	SectionID     string `json:"section_id"`
	SubSectionID  string `json:"sub_section_id"`
	FloorID       string `json:"floor_id"`
	LineID        string `json:"line_id"`
}

func (ch Chain) ordered() []string {
	return []string{
		ch.GroupID,
		ch.CompanyUnitID,
		ch.DivisionID,
		ch.DepartmentID,
		ch.SectionID,
		ch.SubSectionID,
		ch.FloorID,
		ch.LineID,
	}
}
