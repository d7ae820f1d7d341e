package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-hrm/internal/attendance"
	"go-hrm/internal/authz"
	"go-hrm/internal/employee"
	payrollerrors "go-hrm/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusProcessed = "PROCESSED"
	StatusApproved  = "APPROVED"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

// A generated DRAFT row may be approved directly; the PROCESSED step is
// optional review.
var statusTransitions = map[string][]string{
	StatusDraft:     {StatusProcessed, StatusApproved, StatusCancelled},
	StatusProcessed: {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusPaid, StatusCancelled},
}

func isAllowedTransition(from, to string) bool {
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// EmployeeDirectory lists the employees a payroll run covers.
type EmployeeDirectory interface {
	FindActive(ctx context.Context) ([]employee.Employee, error)
}

// AttendanceSource supplies the monthly day counts the proration uses.
type AttendanceSource interface {
	Summary(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error)
}

// FundSource reports the provident fund deduction for one employee. A zero
// amount means the employee is not enrolled.
type FundSource interface {
	MonthlyContribution(ctx context.Context, employeeID string, basicSalary decimal.Decimal) (decimal.Decimal, error)
}

// LoanSource reports the summed installment of the employee's active loans.
type LoanSource interface {
	MonthlyInstallments(ctx context.Context, employeeID string) (decimal.Decimal, error)
}

type Service interface {
	CreateStructure(ctx context.Context, req CreateStructureRequest) (StructureResponse, error)
	GetStructures(ctx context.Context, employeeID string) ([]StructureResponse, error)

	GenerateMonthly(ctx context.Context, month, year int, actorID string) (GenerateResult, error)
	GetAll(ctx context.Context, scope authz.Scope, month, year int, status string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	MyPayrolls(ctx context.Context, employeeID string) ([]PayrollResponse, error)

	Process(ctx context.Context, id string) (PayrollResponse, error)
	Approve(ctx context.Context, id, approverID string) (PayrollResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)
	Cancel(ctx context.Context, id string) (PayrollResponse, error)

	Payslip(ctx context.Context, id string) ([]byte, string, error)
	Statistics(ctx context.Context, month, year int) (StatisticsResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   EmployeeDirectory
	attendance  AttendanceSource
	fund        FundSource
	loans       LoanSource
	workingDays int
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	attendanceSource AttendanceSource,
	fund FundSource,
	loans LoanSource,
	workingDays int,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if workingDays <= 0 {
		workingDays = 30
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		attendance:  attendanceSource,
		fund:        fund,
		loans:       loans,
		workingDays: workingDays,
		logger:      l,
	}
}

// CreateStructure versions the employee's salary: any previously active
// structure is deactivated in the same transaction.
func (s *service) CreateStructure(ctx context.Context, req CreateStructureRequest) (StructureResponse, error) {
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return StructureResponse{}, payrollerrors.ErrInvalidEffectiveDate
	}

	basic, err := parseAmount(req.BasicSalary)
	if err != nil {
		return StructureResponse{}, err
	}
	houseRent, err := parseAmount(defaultZero(req.HouseRent))
	if err != nil {
		return StructureResponse{}, err
	}
	medical, err := parseAmount(defaultZero(req.Medical))
	if err != nil {
		return StructureResponse{}, err
	}
	conveyance, err := parseAmount(defaultZero(req.Conveyance))
	if err != nil {
		return StructureResponse{}, err
	}
	food, err := parseAmount(defaultZero(req.FoodAllowance))
	if err != nil {
		return StructureResponse{}, err
	}
	special, err := parseAmount(defaultZero(req.SpecialAllowance))
	if err != nil {
		return StructureResponse{}, err
	}
	mobile, err := parseAmount(defaultZero(req.MobileAllowance))
	if err != nil {
		return StructureResponse{}, err
	}
	other, err := parseAmount(defaultZero(req.OtherAllowance))
	if err != nil {
		return StructureResponse{}, err
	}

	gross := basic.Add(houseRent).Add(medical).Add(conveyance).
		Add(food).Add(special).Add(mobile).Add(other)

	structure := &SalaryStructure{
		ID:               uuid.New(),
		EmployeeID:       uuid.MustParse(req.EmployeeID),
		BasicSalary:      basic,
		HouseRent:        houseRent,
		Medical:          medical,
		Conveyance:       conveyance,
		FoodAllowance:    food,
		SpecialAllowance: special,
		MobileAllowance:  mobile,
		OtherAllowance:   other,
		GrossSalary:      gross,
		EffectiveDate:    effectiveDate,
		IsActive:         true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create structure begin tx failed", zap.Error(err))
		return StructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeactivateStructures(ctx, req.EmployeeID); err != nil {
		s.logger.Error("deactivate prior structures failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return StructureResponse{}, err
	}
	if err := qtx.CreateStructure(ctx, structure); err != nil {
		s.logger.Error("create structure persist failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return StructureResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return StructureResponse{}, err
	}

	s.logger.Info("salary structure created",
		zap.String("employee_id", req.EmployeeID),
		zap.String("gross_salary", gross.StringFixed(2)),
	)
	return mapStructure(*structure), nil
}

func (s *service) GetStructures(ctx context.Context, employeeID string) ([]StructureResponse, error) {
	structures, err := s.repo.FindStructures(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]StructureResponse, len(structures))
	for i, st := range structures {
		res[i] = mapStructure(st)
	}
	return res, nil
}

// GenerateMonthly creates a DRAFT payroll for every active employee without
// one for the period. Per-employee failures are collected and reported back,
// never aborting the batch.
func (s *service) GenerateMonthly(ctx context.Context, month, year int, actorID string) (GenerateResult, error) {
	if month < 1 || month > 12 || year < 2000 {
		return GenerateResult{}, payrollerrors.ErrInvalidPeriod
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return GenerateResult{}, payrollerrors.ErrInvalidPeriod
	}

	employees, err := s.employees.FindActive(ctx)
	if err != nil {
		s.logger.Error("generate monthly employee listing failed", zap.Error(err))
		return GenerateResult{}, err
	}

	result := GenerateResult{Month: month, Year: year, Errors: []GenerationError{}}
	for _, emp := range employees {
		employeeID := emp.ID.String()

		exists, err := s.repo.PayrollExists(ctx, employeeID, month, year)
		if err != nil {
			result.Errors = append(result.Errors, generationError(emp, err.Error()))
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		structure, err := s.repo.FindActiveStructure(ctx, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Errors = append(result.Errors, generationError(emp, "no active salary structure"))
			} else {
				result.Errors = append(result.Errors, generationError(emp, err.Error()))
			}
			continue
		}

		summary, err := s.attendance.Summary(ctx, employeeID, month, year)
		if err != nil {
			result.Errors = append(result.Errors, generationError(emp, err.Error()))
			continue
		}

		p := s.buildPayroll(actorUUID, emp.ID, structure, summary, month, year)

		if err := s.applyDeductions(ctx, employeeID, structure.BasicSalary, p); err != nil {
			result.Errors = append(result.Errors, generationError(emp, err.Error()))
			continue
		}

		if err := s.repo.CreatePayroll(ctx, p); err != nil {
			if isUniqueViolation(err) {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, generationError(emp, err.Error()))
			continue
		}
		result.Generated++
	}

	s.logger.Info("monthly payroll generated",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("generated", result.Generated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (s *service) buildPayroll(
	actorID, employeeID uuid.UUID,
	structure *SalaryStructure,
	summary attendance.MonthlySummary,
	month, year int,
) *Payroll {
	payableDays := summary.PresentDays + summary.LeaveDays
	if payableDays > s.workingDays {
		payableDays = s.workingDays
	}

	basic := structure.BasicSalary.
		Mul(decimal.NewFromInt(int64(payableDays))).
		Div(decimal.NewFromInt(int64(s.workingDays))).
		Round(2)
	allowances := structure.GrossSalary.Sub(structure.BasicSalary)
	gross := basic.Add(allowances)

	structureID := structure.ID
	return &Payroll{
		ID:                uuid.New(),
		EmployeeID:        employeeID,
		SalaryStructureID: &structureID,
		Month:             month,
		Year:              year,
		WorkingDays:       s.workingDays,
		PresentDays:       summary.PresentDays,
		AbsentDays:        summary.AbsentDays,
		LeaveDays:         summary.LeaveDays,
		OvertimeHours:     summary.OvertimeHours,
		BasicSalary:       basic,
		Allowances:        allowances,
		GrossEarnings:     gross,
		PFDeduction:       decimal.Zero,
		LoanDeduction:     decimal.Zero,
		OtherDeductions:   decimal.Zero,
		TotalDeductions:   decimal.Zero,
		NetSalary:         gross,
		Status:            StatusDraft,
		GeneratedBy:       actorID,
	}
}

func (s *service) applyDeductions(ctx context.Context, employeeID string, structureBasic decimal.Decimal, p *Payroll) error {
	if s.fund != nil {
		pf, err := s.fund.MonthlyContribution(ctx, employeeID, structureBasic)
		if err != nil {
			return err
		}
		p.PFDeduction = pf
	}
	if s.loans != nil {
		installments, err := s.loans.MonthlyInstallments(ctx, employeeID)
		if err != nil {
			return err
		}
		p.LoanDeduction = installments
	}

	p.TotalDeductions = p.PFDeduction.Add(p.LoanDeduction).Add(p.OtherDeductions)
	p.NetSalary = p.GrossEarnings.Sub(p.TotalDeductions)
	return nil
}

func (s *service) GetAll(ctx context.Context, scope authz.Scope, month, year int, status string) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAllPayrolls(ctx, scope, month, year, status)
	if err != nil {
		return nil, err
	}
	return mapPayrolls(payrolls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.repo.FindPayrollByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapPayroll(*p), nil
}

func (s *service) MyPayrolls(ctx context.Context, employeeID string) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindPayrollsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapPayrolls(payrolls), nil
}

func (s *service) Process(ctx context.Context, id string) (PayrollResponse, error) {
	return s.transition(ctx, id, StatusProcessed, func(p *Payroll) error { return nil })
}

func (s *service) Approve(ctx context.Context, id, approverID string) (PayrollResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}
	return s.transition(ctx, id, StatusApproved, func(p *Payroll) error {
		now := time.Now().UTC()
		p.ApprovedBy = &approverUUID
		p.ApprovedAt = &now
		return nil
	})
}

func (s *service) MarkPaid(ctx context.Context, id string) (PayrollResponse, error) {
	resp, err := s.transitionGuarded(ctx, id, StatusPaid, payrollerrors.ErrPayrollNotApproved, func(p *Payroll) error {
		now := time.Now().UTC()
		p.PaidAt = &now
		return nil
	})
	return resp, err
}

func (s *service) Cancel(ctx context.Context, id string) (PayrollResponse, error) {
	return s.transition(ctx, id, StatusCancelled, func(p *Payroll) error { return nil })
}

func (s *service) transition(ctx context.Context, id, target string, mutate func(*Payroll) error) (PayrollResponse, error) {
	return s.transitionGuarded(ctx, id, target, payrollerrors.ErrInvalidStatusTransition, mutate)
}

// transitionGuarded moves a payroll to the target status under a row lock so
// concurrent transitions cannot both succeed.
func (s *service) transitionGuarded(ctx context.Context, id, target string, guardErr error, mutate func(*Payroll) error) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payroll transition begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindPayrollForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if !isAllowedTransition(p.Status, target) {
		s.logger.Warn("payroll transition refused",
			zap.String("payroll_id", id),
			zap.String("from_status", p.Status),
			zap.String("to_status", target),
		)
		return PayrollResponse{}, guardErr
	}

	p.Status = target
	if err := mutate(p); err != nil {
		return PayrollResponse{}, err
	}

	if err := qtx.UpdatePayrollStatus(ctx, p); err != nil {
		s.logger.Error("payroll transition persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll status changed",
		zap.String("payroll_id", id),
		zap.String("status", target),
	)
	return mapPayroll(*p), nil
}

func (s *service) Payslip(ctx context.Context, id string) ([]byte, string, error) {
	p, err := s.repo.FindPayrollByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", payrollerrors.ErrPayrollNotFound
		}
		return nil, "", err
	}

	name := p.EmployeeID.String()
	number := ""
	if p.Employee != nil {
		name = p.Employee.FullName
		number = p.Employee.EmployeeNumber
	}

	lines := []string{
		fmt.Sprintf("Payslip %04d-%02d", p.Year, p.Month),
		fmt.Sprintf("Employee: %s (%s)", name, number),
		fmt.Sprintf("Working days: %d  Present: %d  Leave: %d  Absent: %d", p.WorkingDays, p.PresentDays, p.LeaveDays, p.AbsentDays),
		fmt.Sprintf("Basic salary: %s", p.BasicSalary.StringFixed(2)),
		fmt.Sprintf("Allowances: %s", p.Allowances.StringFixed(2)),
		fmt.Sprintf("Gross earnings: %s", p.GrossEarnings.StringFixed(2)),
		fmt.Sprintf("PF deduction: %s", p.PFDeduction.StringFixed(2)),
		fmt.Sprintf("Loan deduction: %s", p.LoanDeduction.StringFixed(2)),
		fmt.Sprintf("Total deductions: %s", p.TotalDeductions.StringFixed(2)),
		fmt.Sprintf("Net salary: %s", p.NetSalary.StringFixed(2)),
		fmt.Sprintf("Status: %s", p.Status),
	}

	pdf, err := buildPayslipPDF(lines)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payslip-%s-%04d-%02d.pdf", defaultName(number, p.EmployeeID.String()), p.Year, p.Month)
	return pdf, filename, nil
}

func (s *service) Statistics(ctx context.Context, month, year int) (StatisticsResponse, error) {
	if month < 1 || month > 12 || year < 2000 {
		return StatisticsResponse{}, payrollerrors.ErrInvalidPeriod
	}

	stats, byStatus, err := s.repo.PeriodStatistics(ctx, month, year)
	if err != nil {
		return StatisticsResponse{}, err
	}

	statusMap := make(map[string]int, len(byStatus))
	for _, sc := range byStatus {
		statusMap[sc.Status] = sc.Count
	}

	return StatisticsResponse{
		Month:          month,
		Year:           year,
		EmployeeCount:  stats.EmployeeCount,
		TotalGross:     stats.TotalGross.StringFixed(2),
		TotalDeduction: stats.TotalDeduction.StringFixed(2),
		TotalNet:       stats.TotalNet.StringFixed(2),
		ByStatus:       statusMap,
	}, nil
}

func generationError(emp employee.Employee, reason string) GenerationError {
	return GenerationError{
		EmployeeID:     emp.ID.String(),
		EmployeeNumber: emp.EmployeeNumber,
		Reason:         reason,
	}
}

func parseAmount(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, payrollerrors.ErrInvalidSalaryAmount
	}
	return d, nil
}

func defaultZero(v string) string {
	if v == "" {
		return "0"
	}
	return v
}

func defaultName(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func mapStructure(st SalaryStructure) StructureResponse {
	return StructureResponse{
		ID:               st.ID.String(),
		EmployeeID:       st.EmployeeID.String(),
		BasicSalary:      st.BasicSalary.StringFixed(2),
		HouseRent:        st.HouseRent.StringFixed(2),
		Medical:          st.Medical.StringFixed(2),
		Conveyance:       st.Conveyance.StringFixed(2),
		FoodAllowance:    st.FoodAllowance.StringFixed(2),
		SpecialAllowance: st.SpecialAllowance.StringFixed(2),
		MobileAllowance:  st.MobileAllowance.StringFixed(2),
		OtherAllowance:   st.OtherAllowance.StringFixed(2),
		GrossSalary:      st.GrossSalary.StringFixed(2),
		EffectiveDate:    st.EffectiveDate.Format("2006-01-02"),
		IsActive:         st.IsActive,
	}
}

func mapPayroll(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:              p.ID.String(),
		EmployeeID:      p.EmployeeID.String(),
		Month:           p.Month,
		Year:            p.Year,
		WorkingDays:     p.WorkingDays,
		PresentDays:     p.PresentDays,
		AbsentDays:      p.AbsentDays,
		LeaveDays:       p.LeaveDays,
		OvertimeHours:   p.OvertimeHours.StringFixed(2),
		BasicSalary:     p.BasicSalary.StringFixed(2),
		Allowances:      p.Allowances.StringFixed(2),
		GrossEarnings:   p.GrossEarnings.StringFixed(2),
		PFDeduction:     p.PFDeduction.StringFixed(2),
		LoanDeduction:   p.LoanDeduction.StringFixed(2),
		OtherDeductions: p.OtherDeductions.StringFixed(2),
		TotalDeductions: p.TotalDeductions.StringFixed(2),
		NetSalary:       p.NetSalary.StringFixed(2),
		Status:          p.Status,
	}
	if p.Employee != nil {
		resp.EmployeeNumber = p.Employee.EmployeeNumber
		resp.EmployeeName = p.Employee.FullName
	}
	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if p.ApprovedAt != nil {
		v := p.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapPayrolls(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapPayroll(p)
	}
	return resp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
