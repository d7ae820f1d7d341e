package loan

type CreateLoanTypeRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	MaxAmount       string `json:"max_amount" binding:"required"`
	InterestRate    string `json:"interest_rate"`
	MaxTenureMonths int    `json:"max_tenure_months" binding:"required,min=1,max=360"`
	Description     string `json:"description"`
}

type UpdateLoanTypeRequest struct {
	Name            string `json:"name" binding:"omitempty,min=2,max=100"`
	MaxAmount       string `json:"max_amount"`
	InterestRate    string `json:"interest_rate"`
	MaxTenureMonths int    `json:"max_tenure_months" binding:"omitempty,min=1,max=360"`
	Description     string `json:"description"`
	IsActive        *bool  `json:"is_active"`
}

type ApplyLoanRequest struct {
	LoanTypeID   string `json:"loan_type_id" binding:"required,uuid"`
	LoanAmount   string `json:"loan_amount" binding:"required"`
	TenureMonths int    `json:"tenure_months" binding:"required,min=1,max=360"`
	Purpose      string `json:"purpose" binding:"required,min=5"`
}

type RepayLoanRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type LoanTypeResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MaxAmount       string `json:"max_amount"`
	InterestRate    string `json:"interest_rate"`
	MaxTenureMonths int    `json:"max_tenure_months"`
	Description     string `json:"description"`
	IsActive        bool   `json:"is_active"`
}

type LoanResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeNumber     string  `json:"employee_number,omitempty"`
	EmployeeName       string  `json:"employee_name,omitempty"`
	LoanTypeID         string  `json:"loan_type_id"`
	LoanTypeName       string  `json:"loan_type_name,omitempty"`
	LoanAmount         string  `json:"loan_amount"`
	InterestRate       string  `json:"interest_rate"`
	TenureMonths       int     `json:"tenure_months"`
	MonthlyInstallment string  `json:"monthly_installment"`
	TotalPayable       string  `json:"total_payable"`
	PaidAmount         string  `json:"paid_amount"`
	RemainingAmount    string  `json:"remaining_amount"`
	ApplicationDate    string  `json:"application_date"`
	ApprovalDate       *string `json:"approval_date,omitempty"`
	DisbursementDate   *string `json:"disbursement_date,omitempty"`
	Purpose            string  `json:"purpose"`
	Status             string  `json:"status"`
	ApprovedBy         *string `json:"approved_by,omitempty"`
}
