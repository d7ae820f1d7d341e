package organization

// Level identifies one tier of the organizational hierarchy. Levels form a
// strict chain: every node's parent must live at the level immediately above.
type Level string

const (
	LevelGroup       Level = "group"
	LevelCompanyUnit Level = "company_unit"
	LevelDivision    Level = "division"
	LevelDepartment  Level = "department"
	LevelSection     Level = "section"
	LevelSubSection  Level = "sub_section"
	LevelFloor       Level = "floor"
	LevelLine        Level = "line"
)

// levelChain is ordered root first.
var levelChain = []Level{
	LevelGroup,
	LevelCompanyUnit,
	LevelDivision,
	LevelDepartment,
	LevelSection,
	LevelSubSection,
	LevelFloor,
	LevelLine,
}

var levelTables = map[Level]string{
	LevelGroup:       "org_groups",
	LevelCompanyUnit: "company_units",
	LevelDivision:    "divisions",
	LevelDepartment:  "departments",
	LevelSection:     "sections",
	LevelSubSection:  "sub_sections",
	LevelFloor:       "floors",
	LevelLine:        "org_lines",
}

// employeeColumns maps each level to the foreign-key column on the employees
// table, used to refuse hard deletes of referenced nodes.
var employeeColumns = map[Level]string{
	LevelGroup:       "group_id",
	LevelCompanyUnit: "company_unit_id",
	LevelDivision:    "division_id",
	LevelDepartment:  "department_id",
	LevelSection:     "section_id",
	LevelSubSection:  "sub_section_id",
	LevelFloor:       "floor_id",
	LevelLine:        "line_id",
}

func ParseLevel(s string) (Level, bool) {
	l := Level(s)
	_, ok := levelTables[l]
	return l, ok
}

func Levels() []Level {
	out := make([]Level, len(levelChain))
	copy(out, levelChain)
	return out
}

func (l Level) String() string { return string(l) }

func (l Level) TableName() string { return levelTables[l] }

func (l Level) EmployeeColumn() string { return employeeColumns[l] }

func (l Level) IsRoot() bool { return l == LevelGroup }

// Parent returns the level immediately above, or false at the root.
func (l Level) Parent() (Level, bool) {
	for i, lv := range levelChain {
		if lv == l && i > 0 {
			return levelChain[i-1], true
		}
	}
	return "", false
}

// Child returns the level immediately below, or false at the leaf.
func (l Level) Child() (Level, bool) {
	for i, lv := range levelChain {
		if lv == l && i < len(levelChain)-1 {
			return levelChain[i+1], true
		}
	}
	return "", false
}
