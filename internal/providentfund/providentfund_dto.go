package providentfund

type OpenAccountRequest struct {
	EmployeeID              string `json:"employee_id" binding:"required,uuid"`
	EmployeeContributionPct string `json:"employee_contribution_percent" binding:"required"`
	EmployerContributionPct string `json:"employer_contribution_percent" binding:"required"`
}

type UpdatePercentsRequest struct {
	EmployeeContributionPct string `json:"employee_contribution_percent"`
	EmployerContributionPct string `json:"employer_contribution_percent"`
	IsActive                *bool  `json:"is_active"`
}

type PostContributionRequest struct {
	BasicSalary string `json:"basic_salary" binding:"required"`
}

type AccountResponse struct {
	ID                        string `json:"id"`
	EmployeeID                string `json:"employee_id"`
	EmployeeNumber            string `json:"employee_number,omitempty"`
	EmployeeName              string `json:"employee_name,omitempty"`
	EmployeeContributionPct   string `json:"employee_contribution_percent"`
	EmployerContributionPct   string `json:"employer_contribution_percent"`
	TotalEmployeeContribution string `json:"total_employee_contribution"`
	TotalEmployerContribution string `json:"total_employer_contribution"`
	TotalBalance              string `json:"total_balance"`
	IsActive                  bool   `json:"is_active"`
}
