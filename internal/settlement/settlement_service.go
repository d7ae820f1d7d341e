package settlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	settlementerrors "go-hrm/internal/settlement/errors"
	"go-hrm/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusInitiated  = "INITIATED"
	StatusPending    = "PENDING"
	StatusCalculated = "CALCULATED"
	StatusApproved   = "APPROVED"
	StatusPaid       = "PAID"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// gratuityYearsThreshold is the minimum service length before gratuity
// becomes payable.
const gratuityYearsThreshold = 5

var statusTransitions = map[string][]string{
	StatusInitiated:  {StatusPending, StatusCalculated, StatusCancelled},
	StatusPending:    {StatusCalculated, StatusCancelled},
	StatusCalculated: {StatusCalculated, StatusApproved, StatusCancelled},
	StatusApproved:   {StatusPaid, StatusCancelled},
	StatusPaid:       {StatusCompleted},
}

func isAllowedTransition(from, to string) bool {
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// LoanOutstanding reports the employee's total unpaid loan principal.
type LoanOutstanding interface {
	OutstandingForEmployee(ctx context.Context, employeeID string) (decimal.Decimal, error)
}

type Service interface {
	Initiate(ctx context.Context, req InitiateSettlementRequest) (SettlementResponse, error)
	GetAll(ctx context.Context, status string) ([]SettlementResponse, error)
	GetByID(ctx context.Context, id string) (SettlementResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (SettlementResponse, error)
	UpdateComponents(ctx context.Context, id string, req UpdateComponentsRequest) (SettlementResponse, error)
	Calculate(ctx context.Context, id, actorID string, req CalculateRequest) (SettlementResponse, error)
	Approve(ctx context.Context, id, approverID string) (SettlementResponse, error)
	MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (SettlementResponse, error)
	Complete(ctx context.Context, id string) (SettlementResponse, error)
	Cancel(ctx context.Context, id string) (SettlementResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	loans   LoanOutstanding
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, loans LoanOutstanding, logger ...*zap.Logger) Service {
	l := zap.L().Named("settlement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settlement.service")
	}
	return &service{db: db, repo: repo, counter: counterRepo, loans: loans, logger: l}
}

func (s *service) Initiate(ctx context.Context, req InitiateSettlementRequest) (SettlementResponse, error) {
	lastWorking, err := parseDate(req.LastWorkingDate)
	if err != nil {
		return SettlementResponse{}, err
	}
	settlementDate, err := parseDate(req.SettlementDate)
	if err != nil {
		return SettlementResponse{}, err
	}
	var resignationDate *time.Time
	if req.ResignationDate != "" {
		d, err := parseDate(req.ResignationDate)
		if err != nil {
			return SettlementResponse{}, err
		}
		resignationDate = &d
	}

	year := settlementDate.Year()
	seq, err := s.counter.GetNextValue(ctx, strconv.Itoa(year), "settlement")
	if err != nil {
		s.logger.Error("settlement sequence failed", zap.Error(err))
		return SettlementResponse{}, err
	}

	requiredNotice := req.RequiredNoticeDays
	if requiredNotice == 0 {
		requiredNotice = 30
	}
	shortfall := noticeShortfall(requiredNotice, req.ActualNoticeDays)

	stl := &EmployeeSettlement{
		ID:                 uuid.New(),
		SettlementID:       fmt.Sprintf("STL%d%05d", year, seq),
		EmployeeID:         uuid.MustParse(req.EmployeeID),
		ExitReason:         req.ExitReason,
		ExitReasonDetails:  req.ExitReasonDetails,
		ResignationDate:    resignationDate,
		LastWorkingDate:    lastWorking,
		SettlementDate:     settlementDate,
		RequiredNoticeDays: requiredNotice,
		ActualNoticeDays:   req.ActualNoticeDays,
		NoticeShortfall:    shortfall,
		NoticePeriodServed: shortfall == 0,
		Status:             StatusInitiated,
		Remarks:            req.Remarks,
	}

	if err := s.repo.Create(ctx, stl); err != nil {
		if isUniqueViolation(err) {
			return SettlementResponse{}, settlementerrors.ErrSettlementExists
		}
		s.logger.Error("settlement persist failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return SettlementResponse{}, err
	}

	s.logger.Info("settlement initiated",
		zap.String("settlement_id", stl.SettlementID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("exit_reason", req.ExitReason),
	)
	return mapSettlement(*stl), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]SettlementResponse, error) {
	settlements, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	res := make([]SettlementResponse, len(settlements))
	for i, stl := range settlements {
		res[i] = mapSettlement(stl)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SettlementResponse, error) {
	stl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
		}
		return SettlementResponse{}, err
	}
	return mapSettlement(*stl), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (SettlementResponse, error) {
	stl, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
		}
		return SettlementResponse{}, err
	}
	return mapSettlement(*stl), nil
}

func (s *service) UpdateComponents(ctx context.Context, id string, req UpdateComponentsRequest) (SettlementResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SettlementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	stl, err := qtx.FindForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
		}
		return SettlementResponse{}, err
	}
	switch stl.Status {
	case StatusApproved, StatusPaid, StatusCompleted, StatusCancelled:
		return SettlementResponse{}, settlementerrors.ErrSettlementImmutable
	}

	fields := []struct {
		value  string
		target *decimal.Decimal
	}{
		{req.PendingSalary, &stl.PendingSalary},
		{req.NoticePay, &stl.NoticePay},
		{req.BonusPayable, &stl.BonusPayable},
		{req.OvertimePay, &stl.OvertimePay},
		{req.Reimbursements, &stl.Reimbursements},
		{req.ProvidentFundAmount, &stl.ProvidentFundAmount},
		{req.OtherPayments, &stl.OtherPayments},
		{req.AdvanceRecovery, &stl.AdvanceRecovery},
		{req.AssetRecovery, &stl.AssetRecovery},
		{req.TrainingBondPenalty, &stl.TrainingBondPenalty},
		{req.DamageCompensation, &stl.DamageCompensation},
		{req.TaxDeduction, &stl.TaxDeduction},
		{req.OtherDeductions, &stl.OtherDeductions},
		{req.EncashableLeaveDays, &stl.EncashableLeaveDays},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		d, err := decimal.NewFromString(f.value)
		if err != nil || d.IsNegative() {
			return SettlementResponse{}, settlementerrors.ErrInvalidAmount
		}
		*f.target = d
	}

	if err := qtx.UpdateComponents(ctx, stl); err != nil {
		return SettlementResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SettlementResponse{}, err
	}

	return mapSettlement(*stl), nil
}

// Calculate recomputes the notice shortfall and the derived components,
// totals the payables and deductibles, and moves the settlement to
// CALCULATED. Recalculation over an already calculated settlement is
// allowed and, with unchanged inputs, lands on the same net amount.
func (s *service) Calculate(ctx context.Context, id, actorID string, req CalculateRequest) (SettlementResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
	}

	lastSalary, err := optionalAmount(req.LastSalary)
	if err != nil {
		return SettlementResponse{}, err
	}
	perDay, err := optionalAmount(req.PerDaySalary)
	if err != nil {
		return SettlementResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("calculate begin tx failed", zap.Error(err))
		return SettlementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	stl, err := qtx.FindForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
		}
		return SettlementResponse{}, err
	}
	if !isAllowedTransition(stl.Status, StatusCalculated) {
		return SettlementResponse{}, settlementerrors.ErrInvalidStatusTransition
	}

	stl.NoticeShortfall = noticeShortfall(stl.RequiredNoticeDays, stl.ActualNoticeDays)
	stl.NoticePeriodServed = stl.NoticeShortfall == 0

	if !lastSalary.IsZero() {
		stl.Gratuity = Gratuity(req.YearsOfService, lastSalary)
	}
	if !perDay.IsZero() {
		stl.LeaveEncashment = LeaveEncashment(stl.EncashableLeaveDays, perDay)
		stl.NoticeRecovery = NoticeRecovery(stl.NoticeShortfall, perDay)
	}

	if s.loans != nil {
		outstanding, err := s.loans.OutstandingForEmployee(ctx, stl.EmployeeID.String())
		if err != nil {
			s.logger.Error("loan outstanding lookup failed", zap.String("settlement_id", stl.SettlementID), zap.Error(err))
			return SettlementResponse{}, err
		}
		stl.LoanRecovery = outstanding
	}

	stl.TotalPayable = stl.PendingSalary.
		Add(stl.LeaveEncashment).
		Add(stl.Gratuity).
		Add(stl.NoticePay).
		Add(stl.BonusPayable).
		Add(stl.OvertimePay).
		Add(stl.Reimbursements).
		Add(stl.ProvidentFundAmount).
		Add(stl.OtherPayments)
	stl.TotalDeductible = stl.NoticeRecovery.
		Add(stl.LoanRecovery).
		Add(stl.AdvanceRecovery).
		Add(stl.AssetRecovery).
		Add(stl.TrainingBondPenalty).
		Add(stl.DamageCompensation).
		Add(stl.TaxDeduction).
		Add(stl.OtherDeductions)
	stl.NetSettlementAmount = stl.TotalPayable.Sub(stl.TotalDeductible)

	now := time.Now().UTC()
	stl.Status = StatusCalculated
	stl.CalculatedBy = &actorUUID
	stl.CalculatedAt = &now

	if err := qtx.UpdateCalculation(ctx, stl); err != nil {
		s.logger.Error("calculate persist failed", zap.String("settlement_id", stl.SettlementID), zap.Error(err))
		return SettlementResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SettlementResponse{}, err
	}

	s.logger.Info("settlement calculated",
		zap.String("settlement_id", stl.SettlementID),
		zap.String("net_amount", stl.NetSettlementAmount.StringFixed(2)),
	)
	return mapSettlement(*stl), nil
}

func (s *service) Approve(ctx context.Context, id, approverID string) (SettlementResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
	}
	return s.transition(ctx, id, StatusApproved, func(stl *EmployeeSettlement) error {
		now := time.Now().UTC()
		stl.ApprovedBy = &approverUUID
		stl.ApprovedAt = &now
		return nil
	})
}

func (s *service) MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (SettlementResponse, error) {
	paymentDate := time.Now().UTC()
	if req.PaymentDate != "" {
		d, err := parseDate(req.PaymentDate)
		if err != nil {
			return SettlementResponse{}, err
		}
		paymentDate = d
	}
	return s.transition(ctx, id, StatusPaid, func(stl *EmployeeSettlement) error {
		stl.PaymentMode = req.PaymentMode
		stl.PaymentReference = req.PaymentReference
		stl.PaymentDate = &paymentDate
		return nil
	})
}

func (s *service) Complete(ctx context.Context, id string) (SettlementResponse, error) {
	return s.transition(ctx, id, StatusCompleted, func(stl *EmployeeSettlement) error { return nil })
}

func (s *service) Cancel(ctx context.Context, id string) (SettlementResponse, error) {
	return s.transition(ctx, id, StatusCancelled, func(stl *EmployeeSettlement) error { return nil })
}

func (s *service) transition(ctx context.Context, id, target string, mutate func(*EmployeeSettlement) error) (SettlementResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SettlementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	stl, err := qtx.FindForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
		}
		return SettlementResponse{}, err
	}
	if !isAllowedTransition(stl.Status, target) {
		s.logger.Warn("settlement transition refused",
			zap.String("settlement_id", stl.SettlementID),
			zap.String("from_status", stl.Status),
			zap.String("to_status", target),
		)
		return SettlementResponse{}, settlementerrors.ErrInvalidStatusTransition
	}

	stl.Status = target
	if err := mutate(stl); err != nil {
		return SettlementResponse{}, err
	}

	if err := qtx.UpdateStatus(ctx, stl); err != nil {
		return SettlementResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SettlementResponse{}, err
	}

	s.logger.Info("settlement status changed",
		zap.String("settlement_id", stl.SettlementID),
		zap.String("status", target),
	)
	return mapSettlement(*stl), nil
}

// Gratuity pays fifteen days of the last drawn salary per service year,
// payable only from five years of service.
func Gratuity(yearsOfService int, lastSalary decimal.Decimal) decimal.Decimal {
	if yearsOfService < gratuityYearsThreshold {
		return decimal.Zero
	}
	return lastSalary.
		Mul(decimal.NewFromInt(15)).
		Mul(decimal.NewFromInt(int64(yearsOfService))).
		Div(decimal.NewFromInt(26)).
		Round(2)
}

// NoticeRecovery charges the per-day salary for every unserved notice day.
func NoticeRecovery(shortfallDays int, perDaySalary decimal.Decimal) decimal.Decimal {
	if shortfallDays <= 0 {
		return decimal.Zero
	}
	return perDaySalary.Mul(decimal.NewFromInt(int64(shortfallDays))).Round(2)
}

// LeaveEncashment pays the per-day salary for every encashable leave day.
func LeaveEncashment(encashableDays, perDaySalary decimal.Decimal) decimal.Decimal {
	return encashableDays.Mul(perDaySalary).Round(2)
}

func noticeShortfall(required, actual int) int {
	shortfall := required - actual
	if shortfall < 0 {
		return 0
	}
	return shortfall
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, settlementerrors.ErrInvalidDate
	}
	return t, nil
}

func optionalAmount(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, settlementerrors.ErrInvalidAmount
	}
	return d, nil
}

func mapSettlement(stl EmployeeSettlement) SettlementResponse {
	resp := SettlementResponse{
		ID:                  stl.ID.String(),
		SettlementID:        stl.SettlementID,
		EmployeeID:          stl.EmployeeID.String(),
		ExitReason:          stl.ExitReason,
		ExitReasonDetails:   stl.ExitReasonDetails,
		LastWorkingDate:     stl.LastWorkingDate.Format("2006-01-02"),
		SettlementDate:      stl.SettlementDate.Format("2006-01-02"),
		RequiredNoticeDays:  stl.RequiredNoticeDays,
		ActualNoticeDays:    stl.ActualNoticeDays,
		NoticeShortfall:     stl.NoticeShortfall,
		NoticePeriodServed:  stl.NoticePeriodServed,
		PendingSalary:       stl.PendingSalary.StringFixed(2),
		LeaveEncashment:     stl.LeaveEncashment.StringFixed(2),
		Gratuity:            stl.Gratuity.StringFixed(2),
		NoticePay:           stl.NoticePay.StringFixed(2),
		BonusPayable:        stl.BonusPayable.StringFixed(2),
		OvertimePay:         stl.OvertimePay.StringFixed(2),
		Reimbursements:      stl.Reimbursements.StringFixed(2),
		ProvidentFundAmount: stl.ProvidentFundAmount.StringFixed(2),
		OtherPayments:       stl.OtherPayments.StringFixed(2),
		NoticeRecovery:      stl.NoticeRecovery.StringFixed(2),
		LoanRecovery:        stl.LoanRecovery.StringFixed(2),
		AdvanceRecovery:     stl.AdvanceRecovery.StringFixed(2),
		AssetRecovery:       stl.AssetRecovery.StringFixed(2),
		TrainingBondPenalty: stl.TrainingBondPenalty.StringFixed(2),
		DamageCompensation:  stl.DamageCompensation.StringFixed(2),
		TaxDeduction:        stl.TaxDeduction.StringFixed(2),
		OtherDeductions:     stl.OtherDeductions.StringFixed(2),
		TotalPayable:        stl.TotalPayable.StringFixed(2),
		TotalDeductible:     stl.TotalDeductible.StringFixed(2),
		NetSettlementAmount: stl.NetSettlementAmount.StringFixed(2),
		EncashableLeaveDays: stl.EncashableLeaveDays.StringFixed(1),
		Status:              stl.Status,
		PaymentMode:         stl.PaymentMode,
		PaymentReference:    stl.PaymentReference,
		Remarks:             stl.Remarks,
	}
	if stl.Employee != nil {
		resp.EmployeeNumber = stl.Employee.EmployeeNumber
		resp.EmployeeName = stl.Employee.FullName
	}
	if stl.ResignationDate != nil {
		v := stl.ResignationDate.Format("2006-01-02")
		resp.ResignationDate = &v
	}
	if stl.CalculatedBy != nil {
		v := stl.CalculatedBy.String()
		resp.CalculatedBy = &v
	}
	if stl.CalculatedAt != nil {
		v := stl.CalculatedAt.Format(time.RFC3339)
		resp.CalculatedAt = &v
	}
	if stl.ApprovedBy != nil {
		v := stl.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if stl.ApprovedAt != nil {
		v := stl.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if stl.PaymentDate != nil {
		v := stl.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &v
	}
	return resp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
