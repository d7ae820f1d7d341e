package settlement

type InitiateSettlementRequest struct {
	EmployeeID         string `json:"employee_id" binding:"required,uuid"`
	ExitReason         string `json:"exit_reason" binding:"required,oneof=RESIGNATION RETIREMENT TERMINATION END_OF_CONTRACT MUTUAL_SEPARATION DEATH ABSCONDING OTHER"`
	ExitReasonDetails  string `json:"exit_reason_details"`
	ResignationDate    string `json:"resignation_date"`
	LastWorkingDate    string `json:"last_working_date" binding:"required"`
	SettlementDate     string `json:"settlement_date" binding:"required"`
	RequiredNoticeDays int    `json:"required_notice_days"`
	ActualNoticeDays   int    `json:"actual_notice_days"`
	Remarks            string `json:"remarks"`
}

type UpdateComponentsRequest struct {
	PendingSalary       string `json:"pending_salary"`
	NoticePay           string `json:"notice_pay"`
	BonusPayable        string `json:"bonus_payable"`
	OvertimePay         string `json:"overtime_pay"`
	Reimbursements      string `json:"reimbursements"`
	ProvidentFundAmount string `json:"provident_fund_amount"`
	OtherPayments       string `json:"other_payments"`
	AdvanceRecovery     string `json:"advance_recovery"`
	AssetRecovery       string `json:"asset_recovery"`
	TrainingBondPenalty string `json:"training_bond_penalty"`
	DamageCompensation  string `json:"damage_compensation"`
	TaxDeduction        string `json:"tax_deduction"`
	OtherDeductions     string `json:"other_deductions"`
	EncashableLeaveDays string `json:"encashable_leave_days"`
}

type CalculateRequest struct {
	YearsOfService int    `json:"years_of_service" binding:"min=0"`
	LastSalary     string `json:"last_salary"`
	PerDaySalary   string `json:"per_day_salary"`
}

type MarkPaidRequest struct {
	PaymentMode      string `json:"payment_mode" binding:"required,max=50"`
	PaymentReference string `json:"payment_reference" binding:"max=100"`
	PaymentDate      string `json:"payment_date"`
}

type SettlementResponse struct {
	ID             string `json:"id"`
	SettlementID   string `json:"settlement_id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeNumber string `json:"employee_number,omitempty"`
	EmployeeName   string `json:"employee_name,omitempty"`

	ExitReason        string  `json:"exit_reason"`
	ExitReasonDetails string  `json:"exit_reason_details,omitempty"`
	ResignationDate   *string `json:"resignation_date,omitempty"`
	LastWorkingDate   string  `json:"last_working_date"`
	SettlementDate    string  `json:"settlement_date"`

	RequiredNoticeDays int  `json:"required_notice_days"`
	ActualNoticeDays   int  `json:"actual_notice_days"`
	NoticeShortfall    int  `json:"notice_shortfall_days"`
	NoticePeriodServed bool `json:"notice_period_served"`

	PendingSalary       string `json:"pending_salary"`
	LeaveEncashment     string `json:"leave_encashment"`
	Gratuity            string `json:"gratuity"`
	NoticePay           string `json:"notice_pay"`
	BonusPayable        string `json:"bonus_payable"`
	OvertimePay         string `json:"overtime_pay"`
	Reimbursements      string `json:"reimbursements"`
	ProvidentFundAmount string `json:"provident_fund_amount"`
	OtherPayments       string `json:"other_payments"`

	NoticeRecovery      string `json:"notice_period_recovery"`
	LoanRecovery        string `json:"loan_recovery"`
	AdvanceRecovery     string `json:"advance_recovery"`
	AssetRecovery       string `json:"asset_recovery"`
	TrainingBondPenalty string `json:"training_bond_penalty"`
	DamageCompensation  string `json:"damage_compensation"`
	TaxDeduction        string `json:"tax_deduction"`
	OtherDeductions     string `json:"other_deductions"`

	TotalPayable        string `json:"total_payable"`
	TotalDeductible     string `json:"total_deductible"`
	NetSettlementAmount string `json:"net_settlement_amount"`

	EncashableLeaveDays string `json:"encashable_leave_days"`

	Status string `json:"status"`

	CalculatedBy *string `json:"calculated_by,omitempty"`
	CalculatedAt *string `json:"calculated_at,omitempty"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`

	PaymentMode      string  `json:"payment_mode,omitempty"`
	PaymentReference string  `json:"payment_reference,omitempty"`
	PaymentDate      *string `json:"payment_date,omitempty"`

	Remarks string `json:"remarks,omitempty"`
}
