package loan

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrm/internal/authz"
	loanerrors "go-hrm/internal/loan/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusActive   = "ACTIVE"
	StatusClosed   = "CLOSED"
)

var statusTransitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusActive},
	StatusActive:   {StatusClosed},
}

func isAllowedTransition(from, to string) bool {
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type Service interface {
	CreateType(ctx context.Context, req CreateLoanTypeRequest) (LoanTypeResponse, error)
	GetTypes(ctx context.Context) ([]LoanTypeResponse, error)
	UpdateType(ctx context.Context, id string, req UpdateLoanTypeRequest) (LoanTypeResponse, error)

	Apply(ctx context.Context, employeeID string, req ApplyLoanRequest) (LoanResponse, error)
	MyLoans(ctx context.Context, employeeID string) ([]LoanResponse, error)
	GetByID(ctx context.Context, id string) (LoanResponse, error)
	GetAll(ctx context.Context, scope authz.Scope, status string) ([]LoanResponse, error)
	Approve(ctx context.Context, id, approverID string) (LoanResponse, error)
	Reject(ctx context.Context, id, approverID string) (LoanResponse, error)
	Disburse(ctx context.Context, id string) (LoanResponse, error)
	Repay(ctx context.Context, id string, req RepayLoanRequest) (LoanResponse, error)

	MonthlyInstallments(ctx context.Context, employeeID string) (decimal.Decimal, error)
	OutstandingForEmployee(ctx context.Context, employeeID string) (decimal.Decimal, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("loan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loan.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateType(ctx context.Context, req CreateLoanTypeRequest) (LoanTypeResponse, error) {
	maxAmount, err := parseAmount(req.MaxAmount)
	if err != nil {
		return LoanTypeResponse{}, err
	}
	rate, err := parseRate(req.InterestRate)
	if err != nil {
		return LoanTypeResponse{}, err
	}

	t := &LoanType{
		ID:              uuid.New(),
		Name:            req.Name,
		MaxAmount:       maxAmount,
		InterestRate:    rate,
		MaxTenureMonths: req.MaxTenureMonths,
		Description:     req.Description,
		IsActive:        true,
	}
	if err := s.repo.CreateType(ctx, t); err != nil {
		if isUniqueViolation(err) {
			return LoanTypeResponse{}, loanerrors.ErrDuplicateLoanType
		}
		s.logger.Error("loan type persist failed", zap.String("name", req.Name), zap.Error(err))
		return LoanTypeResponse{}, err
	}
	return mapType(*t), nil
}

func (s *service) GetTypes(ctx context.Context) ([]LoanTypeResponse, error) {
	types, err := s.repo.FindTypes(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]LoanTypeResponse, len(types))
	for i, t := range types {
		res[i] = mapType(t)
	}
	return res, nil
}

func (s *service) UpdateType(ctx context.Context, id string, req UpdateLoanTypeRequest) (LoanTypeResponse, error) {
	t, err := s.repo.FindTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanTypeResponse{}, loanerrors.ErrLoanTypeNotFound
		}
		return LoanTypeResponse{}, err
	}

	if req.Name != "" {
		t.Name = req.Name
	}
	if req.MaxAmount != "" {
		t.MaxAmount, err = parseAmount(req.MaxAmount)
		if err != nil {
			return LoanTypeResponse{}, err
		}
	}
	if req.InterestRate != "" {
		t.InterestRate, err = parseRate(req.InterestRate)
		if err != nil {
			return LoanTypeResponse{}, err
		}
	}
	if req.MaxTenureMonths > 0 {
		t.MaxTenureMonths = req.MaxTenureMonths
	}
	if req.Description != "" {
		t.Description = req.Description
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateType(ctx, t); err != nil {
		if isUniqueViolation(err) {
			return LoanTypeResponse{}, loanerrors.ErrDuplicateLoanType
		}
		return LoanTypeResponse{}, err
	}
	return mapType(*t), nil
}

func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLoanRequest) (LoanResponse, error) {
	amount, err := parseAmount(req.LoanAmount)
	if err != nil {
		return LoanResponse{}, err
	}

	t, err := s.repo.FindTypeByID(ctx, req.LoanTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrLoanTypeNotFound
		}
		return LoanResponse{}, err
	}
	if !t.IsActive {
		return LoanResponse{}, loanerrors.ErrLoanTypeNotFound
	}
	if amount.GreaterThan(t.MaxAmount) {
		return LoanResponse{}, loanerrors.ErrAmountExceedsLimit
	}
	if req.TenureMonths > t.MaxTenureMonths {
		return LoanResponse{}, loanerrors.ErrTenureExceedsLimit
	}

	installment, total := InstallmentPlan(amount, t.InterestRate, req.TenureMonths)

	l := &Loan{
		ID:                 uuid.New(),
		EmployeeID:         uuid.MustParse(employeeID),
		LoanTypeID:         t.ID,
		LoanAmount:         amount,
		InterestRate:       t.InterestRate,
		TenureMonths:       req.TenureMonths,
		MonthlyInstallment: installment,
		TotalPayable:       total,
		PaidAmount:         decimal.Zero,
		RemainingAmount:    total,
		ApplicationDate:    time.Now().UTC(),
		Purpose:            req.Purpose,
		Status:             StatusPending,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("loan persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return LoanResponse{}, err
	}

	s.logger.Info("loan applied",
		zap.String("loan_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("amount", amount.StringFixed(2)),
	)
	return mapLoan(*l), nil
}

func (s *service) MyLoans(ctx context.Context, employeeID string) ([]LoanResponse, error) {
	loans, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]LoanResponse, len(loans))
	for i, l := range loans {
		res[i] = mapLoan(l)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LoanResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrLoanNotFound
		}
		return LoanResponse{}, err
	}
	return mapLoan(*l), nil
}

func (s *service) GetAll(ctx context.Context, scope authz.Scope, status string) ([]LoanResponse, error) {
	loans, err := s.repo.FindAll(ctx, scope, status)
	if err != nil {
		return nil, err
	}
	res := make([]LoanResponse, len(loans))
	for i, l := range loans {
		res[i] = mapLoan(l)
	}
	return res, nil
}

func (s *service) Approve(ctx context.Context, id, approverID string) (LoanResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrLoanNotFound
	}
	return s.transition(ctx, id, StatusApproved, func(l *Loan) {
		now := time.Now().UTC()
		l.ApprovedBy = &approverUUID
		l.ApprovalDate = &now
	})
}

func (s *service) Reject(ctx context.Context, id, approverID string) (LoanResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrLoanNotFound
	}
	return s.transition(ctx, id, StatusRejected, func(l *Loan) {
		l.ApprovedBy = &approverUUID
	})
}

func (s *service) Disburse(ctx context.Context, id string) (LoanResponse, error) {
	return s.transition(ctx, id, StatusActive, func(l *Loan) {
		now := time.Now().UTC()
		l.DisbursementDate = &now
	})
}

// Repay records a repayment against an active loan and closes it once the
// remaining amount reaches zero. The loan row is locked so concurrent
// repayments cannot overshoot.
func (s *service) Repay(ctx context.Context, id string, req RepayLoanRequest) (LoanResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return LoanResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LoanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrLoanNotFound
		}
		return LoanResponse{}, err
	}
	if l.Status != StatusActive {
		return LoanResponse{}, loanerrors.ErrLoanNotActive
	}

	l.PaidAmount = l.PaidAmount.Add(amount)
	l.RemainingAmount = l.TotalPayable.Sub(l.PaidAmount)
	if !l.RemainingAmount.IsPositive() {
		l.RemainingAmount = decimal.Zero
		l.Status = StatusClosed
	}

	if err := qtx.UpdateRepayment(ctx, l); err != nil {
		return LoanResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LoanResponse{}, err
	}

	s.logger.Info("loan repayment recorded",
		zap.String("loan_id", l.ID.String()),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("remaining", l.RemainingAmount.StringFixed(2)),
	)
	return mapLoan(*l), nil
}

func (s *service) transition(ctx context.Context, id, target string, mutate func(*Loan)) (LoanResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LoanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrLoanNotFound
		}
		return LoanResponse{}, err
	}
	if !isAllowedTransition(l.Status, target) {
		s.logger.Warn("loan transition refused",
			zap.String("loan_id", l.ID.String()),
			zap.String("from_status", l.Status),
			zap.String("to_status", target),
		)
		return LoanResponse{}, loanerrors.ErrInvalidStatusTransition
	}

	l.Status = target
	mutate(l)

	if err := qtx.UpdateStatus(ctx, l); err != nil {
		return LoanResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LoanResponse{}, err
	}

	s.logger.Info("loan status changed",
		zap.String("loan_id", l.ID.String()),
		zap.String("status", target),
	)
	return mapLoan(*l), nil
}

// MonthlyInstallments sums the installments of the employee's active loans.
// Payroll generation deducts this amount from the monthly salary.
func (s *service) MonthlyInstallments(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	return s.repo.SumActiveInstallments(ctx, employeeID)
}

// OutstandingForEmployee sums the unpaid balance of approved and active
// loans. Settlement calculation recovers this as loan_recovery.
func (s *service) OutstandingForEmployee(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	return s.repo.SumOutstanding(ctx, employeeID)
}

// InstallmentPlan prices a loan with flat interest over the full tenure:
// interest = amount x rate/100 x tenure/12, repaid in equal monthly
// installments.
func InstallmentPlan(amount, annualRatePercent decimal.Decimal, tenureMonths int) (installment, totalPayable decimal.Decimal) {
	months := decimal.NewFromInt(int64(tenureMonths))
	interest := amount.
		Mul(annualRatePercent).
		Div(decimal.NewFromInt(100)).
		Mul(months).
		Div(decimal.NewFromInt(12))
	totalPayable = amount.Add(interest).Round(2)
	installment = totalPayable.Div(months).Round(2)
	return installment, totalPayable
}

func parseAmount(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, loanerrors.ErrInvalidAmount
	}
	return d, nil
}

func parseRate(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, loanerrors.ErrInvalidAmount
	}
	return d, nil
}

func mapType(t LoanType) LoanTypeResponse {
	return LoanTypeResponse{
		ID:              t.ID.String(),
		Name:            t.Name,
		MaxAmount:       t.MaxAmount.StringFixed(2),
		InterestRate:    t.InterestRate.StringFixed(2),
		MaxTenureMonths: t.MaxTenureMonths,
		Description:     t.Description,
		IsActive:        t.IsActive,
	}
}

func mapLoan(l Loan) LoanResponse {
	resp := LoanResponse{
		ID:                 l.ID.String(),
		EmployeeID:         l.EmployeeID.String(),
		LoanTypeID:         l.LoanTypeID.String(),
		LoanAmount:         l.LoanAmount.StringFixed(2),
		InterestRate:       l.InterestRate.StringFixed(2),
		TenureMonths:       l.TenureMonths,
		MonthlyInstallment: l.MonthlyInstallment.StringFixed(2),
		TotalPayable:       l.TotalPayable.StringFixed(2),
		PaidAmount:         l.PaidAmount.StringFixed(2),
		RemainingAmount:    l.RemainingAmount.StringFixed(2),
		ApplicationDate:    l.ApplicationDate.Format("2006-01-02"),
		Purpose:            l.Purpose,
		Status:             l.Status,
	}
	if l.LoanType != nil {
		resp.LoanTypeName = l.LoanType.Name
	}
	if l.Employee != nil {
		resp.EmployeeNumber = l.Employee.EmployeeNumber
		resp.EmployeeName = l.Employee.FullName
	}
	if l.ApprovalDate != nil {
		v := l.ApprovalDate.Format("2006-01-02")
		resp.ApprovalDate = &v
	}
	if l.DisbursementDate != nil {
		v := l.DisbursementDate.Format("2006-01-02")
		resp.DisbursementDate = &v
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
