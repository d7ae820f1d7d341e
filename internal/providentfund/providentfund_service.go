package providentfund

import (
	"context"
	"database/sql"
	"errors"

	providentfunderrors "go-hrm/internal/providentfund/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Default contribution percents applied when an account is opened through
// the employee_created event rather than by HR.
var (
	defaultEmployeePercent = decimal.NewFromInt(12)
	defaultEmployerPercent = decimal.NewFromInt(12)
)

type Service interface {
	Enroll(ctx context.Context, employeeID string) error
	Open(ctx context.Context, req OpenAccountRequest) (AccountResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (AccountResponse, error)
	GetAll(ctx context.Context) ([]AccountResponse, error)
	UpdatePercents(ctx context.Context, employeeID string, req UpdatePercentsRequest) (AccountResponse, error)
	PostContribution(ctx context.Context, employeeID string, req PostContributionRequest) (AccountResponse, error)

	MonthlyContribution(ctx context.Context, employeeID string, basicSalary decimal.Decimal) (decimal.Decimal, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("providentfund.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("providentfund.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Enroll opens the account with default percents. Re-delivery of the same
// event hits the unique index on employee_id and is treated as done.
func (s *service) Enroll(ctx context.Context, employeeID string) error {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return providentfunderrors.ErrAccountNotFound
	}

	pf := &ProvidentFund{
		ID:                          uuid.New(),
		EmployeeID:                  empUUID,
		EmployeeContributionPercent: defaultEmployeePercent,
		EmployerContributionPercent: defaultEmployerPercent,
		TotalEmployeeContribution:   decimal.Zero,
		TotalEmployerContribution:   decimal.Zero,
		TotalBalance:                decimal.Zero,
		IsActive:                    true,
	}
	if err := s.repo.Create(ctx, pf); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		s.logger.Error("fund enrollment failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}

	s.logger.Info("fund account opened", zap.String("employee_id", employeeID))
	return nil
}

func (s *service) Open(ctx context.Context, req OpenAccountRequest) (AccountResponse, error) {
	employeePct, err := parsePercent(req.EmployeeContributionPct)
	if err != nil {
		return AccountResponse{}, err
	}
	employerPct, err := parsePercent(req.EmployerContributionPct)
	if err != nil {
		return AccountResponse{}, err
	}

	pf := &ProvidentFund{
		ID:                          uuid.New(),
		EmployeeID:                  uuid.MustParse(req.EmployeeID),
		EmployeeContributionPercent: employeePct,
		EmployerContributionPercent: employerPct,
		TotalEmployeeContribution:   decimal.Zero,
		TotalEmployerContribution:   decimal.Zero,
		TotalBalance:                decimal.Zero,
		IsActive:                    true,
	}
	if err := s.repo.Create(ctx, pf); err != nil {
		if isUniqueViolation(err) {
			return AccountResponse{}, providentfunderrors.ErrAccountExists
		}
		s.logger.Error("fund account persist failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return AccountResponse{}, err
	}
	return mapAccount(*pf), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (AccountResponse, error) {
	pf, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccountResponse{}, providentfunderrors.ErrAccountNotFound
		}
		return AccountResponse{}, err
	}
	return mapAccount(*pf), nil
}

func (s *service) GetAll(ctx context.Context) ([]AccountResponse, error) {
	funds, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]AccountResponse, len(funds))
	for i, pf := range funds {
		res[i] = mapAccount(pf)
	}
	return res, nil
}

func (s *service) UpdatePercents(ctx context.Context, employeeID string, req UpdatePercentsRequest) (AccountResponse, error) {
	pf, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccountResponse{}, providentfunderrors.ErrAccountNotFound
		}
		return AccountResponse{}, err
	}

	if req.EmployeeContributionPct != "" {
		pf.EmployeeContributionPercent, err = parsePercent(req.EmployeeContributionPct)
		if err != nil {
			return AccountResponse{}, err
		}
	}
	if req.EmployerContributionPct != "" {
		pf.EmployerContributionPercent, err = parsePercent(req.EmployerContributionPct)
		if err != nil {
			return AccountResponse{}, err
		}
	}
	if req.IsActive != nil {
		pf.IsActive = *req.IsActive
	}

	if err := s.repo.UpdatePercents(ctx, pf); err != nil {
		return AccountResponse{}, err
	}
	return mapAccount(*pf), nil
}

// PostContribution adds one month's employee and employer shares to the
// account totals. The account row is locked so concurrent postings cannot
// lose an increment.
func (s *service) PostContribution(ctx context.Context, employeeID string, req PostContributionRequest) (AccountResponse, error) {
	basic, err := decimal.NewFromString(req.BasicSalary)
	if err != nil || !basic.IsPositive() {
		return AccountResponse{}, providentfunderrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AccountResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pf, err := qtx.FindForUpdate(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccountResponse{}, providentfunderrors.ErrAccountNotFound
		}
		return AccountResponse{}, err
	}
	if !pf.IsActive {
		return AccountResponse{}, providentfunderrors.ErrAccountInactive
	}

	employeeShare := Contribution(basic, pf.EmployeeContributionPercent)
	employerShare := Contribution(basic, pf.EmployerContributionPercent)

	pf.TotalEmployeeContribution = pf.TotalEmployeeContribution.Add(employeeShare)
	pf.TotalEmployerContribution = pf.TotalEmployerContribution.Add(employerShare)
	pf.TotalBalance = pf.TotalEmployeeContribution.Add(pf.TotalEmployerContribution)

	if err := qtx.UpdateTotals(ctx, pf); err != nil {
		return AccountResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AccountResponse{}, err
	}

	s.logger.Info("fund contribution posted",
		zap.String("employee_id", employeeID),
		zap.String("employee_share", employeeShare.StringFixed(2)),
		zap.String("employer_share", employerShare.StringFixed(2)),
	)
	return mapAccount(*pf), nil
}

// MonthlyContribution reports the employee share deducted from the monthly
// salary. Employees without an active account contribute nothing.
func (s *service) MonthlyContribution(ctx context.Context, employeeID string, basicSalary decimal.Decimal) (decimal.Decimal, error) {
	pf, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	if !pf.IsActive {
		return decimal.Zero, nil
	}
	return Contribution(basicSalary, pf.EmployeeContributionPercent), nil
}

// Contribution computes basic x percent / 100 rounded to two places.
func Contribution(basicSalary, percent decimal.Decimal) decimal.Decimal {
	return basicSalary.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
}

func parsePercent(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, providentfunderrors.ErrInvalidPercent
	}
	return d, nil
}

func mapAccount(pf ProvidentFund) AccountResponse {
	resp := AccountResponse{
		ID:                        pf.ID.String(),
		EmployeeID:                pf.EmployeeID.String(),
		EmployeeContributionPct:   pf.EmployeeContributionPercent.StringFixed(2),
		EmployerContributionPct:   pf.EmployerContributionPercent.StringFixed(2),
		TotalEmployeeContribution: pf.TotalEmployeeContribution.StringFixed(2),
		TotalEmployerContribution: pf.TotalEmployerContribution.StringFixed(2),
		TotalBalance:              pf.TotalBalance.StringFixed(2),
		IsActive:                  pf.IsActive,
	}
	if pf.Employee != nil {
		resp.EmployeeNumber = pf.Employee.EmployeeNumber
		resp.EmployeeName = pf.Employee.FullName
	}
	return resp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
