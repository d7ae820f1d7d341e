package employee

import "go-hrm/internal/organization"

type UserPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN HR MANAGER EMPLOYEE"`
}

type CreateEmployeeRequest struct {
	User UserPayload `json:"user" binding:"required"`

	EmployeeNumber string `json:"employee_number"`
	Phone          string `json:"phone"`

	Chain         organization.Chain `json:"chain"`
	DesignationID string             `json:"designation_id" binding:"omitempty,uuid"`

	EmploymentType     string `json:"employment_type" binding:"omitempty,oneof=PERMANENT CONTRACT PART_TIME INTERN PROBATION MTO"`
	EmployeeCategory   string `json:"employee_category" binding:"omitempty,oneof=OT NON_OT"`
	WorkShift          string `json:"work_shift"`
	WeekendDay         string `json:"weekend_day"`
	JoiningDate        string `json:"joining_date" binding:"required"`
	ConfirmationDate   string `json:"confirmation_date"`
	ReportingManagerID string `json:"reporting_manager_id" binding:"omitempty,uuid"`

	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`

	Chain         organization.Chain `json:"chain"`
	DesignationID string             `json:"designation_id" binding:"omitempty,uuid"`

	EmploymentType     string `json:"employment_type" binding:"omitempty,oneof=PERMANENT CONTRACT PART_TIME INTERN PROBATION MTO"`
	EmployeeCategory   string `json:"employee_category" binding:"omitempty,oneof=OT NON_OT"`
	WorkShift          string `json:"work_shift"`
	WeekendDay         string `json:"weekend_day"`
	ConfirmationDate   string `json:"confirmation_date"`
	ReportingManagerID string `json:"reporting_manager_id" binding:"omitempty,uuid"`

	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
}

type DeactivateEmployeeRequest struct {
	ExitReason string `json:"exit_reason" binding:"required"`
	ExitDate   string `json:"exit_date" binding:"required"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`

	Chain         organization.Chain `json:"chain"`
	DesignationID string             `json:"designation_id,omitempty"`

	EmploymentType     string `json:"employment_type"`
	EmployeeCategory   string `json:"employee_category"`
	WorkShift          string `json:"work_shift,omitempty"`
	WeekendDay         string `json:"weekend_day,omitempty"`
	JoiningDate        string `json:"joining_date"`
	ConfirmationDate   string `json:"confirmation_date,omitempty"`
	ReportingManagerID string `json:"reporting_manager_id,omitempty"`

	BankName          string `json:"bank_name,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`

	IsActive   bool   `json:"is_active"`
	ExitDate   string `json:"exit_date,omitempty"`
	ExitReason string `json:"exit_reason,omitempty"`
}
