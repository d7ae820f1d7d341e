package leave

type CreateLeaveTypeRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Code         string `json:"code" binding:"required,max=20"`
	DaysAllowed  int    `json:"days_allowed" binding:"required,min=0,max=365"`
	IsPaid       *bool  `json:"is_paid"`
	CarryForward bool   `json:"carry_forward"`
}

type UpdateLeaveTypeRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	DaysAllowed  int    `json:"days_allowed" binding:"required,min=0,max=365"`
	IsPaid       *bool  `json:"is_paid"`
	CarryForward bool   `json:"carry_forward"`
	IsActive     *bool  `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	DaysAllowed  int    `json:"days_allowed"`
	IsPaid       bool   `json:"is_paid"`
	CarryForward bool   `json:"carry_forward"`
	IsActive     bool   `json:"is_active"`
}

type ApplyLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"max=2000"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,max=2000"`
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeName   string  `json:"leave_type_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type LeaveBalanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	Year          int    `json:"year"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}
