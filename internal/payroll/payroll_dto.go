package payroll

type CreateStructureRequest struct {
	EmployeeID       string `json:"employee_id" binding:"required,uuid"`
	BasicSalary      string `json:"basic_salary" binding:"required"`
	HouseRent        string `json:"house_rent"`
	Medical          string `json:"medical"`
	Conveyance       string `json:"conveyance"`
	FoodAllowance    string `json:"food_allowance"`
	SpecialAllowance string `json:"special_allowance"`
	MobileAllowance  string `json:"mobile_allowance"`
	OtherAllowance   string `json:"other_allowance"`
	EffectiveDate    string `json:"effective_date" binding:"required"`
}

type StructureResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	BasicSalary      string `json:"basic_salary"`
	HouseRent        string `json:"house_rent"`
	Medical          string `json:"medical"`
	Conveyance       string `json:"conveyance"`
	FoodAllowance    string `json:"food_allowance"`
	SpecialAllowance string `json:"special_allowance"`
	MobileAllowance  string `json:"mobile_allowance"`
	OtherAllowance   string `json:"other_allowance"`
	GrossSalary      string `json:"gross_salary"`
	EffectiveDate    string `json:"effective_date"`
	IsActive         bool   `json:"is_active"`
}

type GenerateRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000"`
}

type GenerationError struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeNumber string `json:"employee_number,omitempty"`
	Reason         string `json:"reason"`
}

type GenerateResult struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Generated int               `json:"generated"`
	Skipped   int               `json:"skipped"`
	Errors    []GenerationError `json:"errors"`
}

type PayrollResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeNumber    string  `json:"employee_number,omitempty"`
	EmployeeName      string  `json:"employee_name,omitempty"`
	Month             int     `json:"month"`
	Year              int     `json:"year"`
	WorkingDays       int     `json:"working_days"`
	PresentDays       int     `json:"present_days"`
	AbsentDays        int     `json:"absent_days"`
	LeaveDays         int     `json:"leave_days"`
	OvertimeHours     string  `json:"overtime_hours"`
	BasicSalary       string  `json:"basic_salary"`
	Allowances        string  `json:"allowances"`
	GrossEarnings     string  `json:"gross_earnings"`
	PFDeduction       string  `json:"pf_deduction"`
	LoanDeduction     string  `json:"loan_deduction"`
	OtherDeductions   string  `json:"other_deductions"`
	TotalDeductions   string  `json:"total_deductions"`
	NetSalary         string  `json:"net_salary"`
	Status            string  `json:"status"`
	ApprovedBy        *string `json:"approved_by,omitempty"`
	ApprovedAt        *string `json:"approved_at,omitempty"`
	PaidAt            *string `json:"paid_at,omitempty"`
}

type StatisticsResponse struct {
	Month          int            `json:"month"`
	Year           int            `json:"year"`
	EmployeeCount  int64          `json:"employee_count"`
	TotalGross     string         `json:"total_gross"`
	TotalDeduction string         `json:"total_deduction"`
	TotalNet       string         `json:"total_net"`
	ByStatus       map[string]int `json:"by_status"`
}
