package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"go-hrm/internal/events"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// LeaveBalanceSeeder creates the current-year leave balances for a newly
// hired employee, one row per active leave type.
type LeaveBalanceSeeder interface {
	SeedBalances(ctx context.Context, employeeID string, year int) error
}

// ProvidentFundEnroller opens the provident fund account for a newly hired
// employee.
type ProvidentFundEnroller interface {
	Enroll(ctx context.Context, employeeID string) error
}

type EmployeeCreatedConsumer struct {
	reader   *kafkago.Reader
	balances LeaveBalanceSeeder
	fund     ProvidentFundEnroller
	logger   *zap.Logger
}

func NewEmployeeCreatedConsumer(
	brokers []string,
	groupID string,
	balances LeaveBalanceSeeder,
	fund ProvidentFundEnroller,
	logger ...*zap.Logger,
) *EmployeeCreatedConsumer {
	l := zap.L().Named("kafka.consumer.employee_created")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.consumer.employee_created")
	}

	return &EmployeeCreatedConsumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        brokers,
			Topic:          events.EmployeeCreatedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafkago.FirstOffset,
		}),
		balances: balances,
		fund:     fund,
		logger:   l,
	}
}

// Start consumes employee_created events until ctx is cancelled. Each event
// seeds the employee's leave balances for the joining year and opens their
// provident fund account.
func (c *EmployeeCreatedConsumer) Start(ctx context.Context) {
	c.logger.Info("employee created consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("employee created consumer stopped")
				return
			}
			c.logger.Error("fetch employee_created message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("decode employee_created event failed", zap.Error(err))
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if err := c.handle(ctx, event); err != nil {
			c.logger.Error("handle employee_created event failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit employee_created message failed", zap.Error(err))
			continue
		}

		c.logger.Info("employee onboarding seeded from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.Int("joining_year", event.JoiningYear),
		)
	}
}

func (c *EmployeeCreatedConsumer) handle(ctx context.Context, event events.EmployeeCreatedEvent) error {
	year := event.JoiningYear
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	if err := c.balances.SeedBalances(ctx, event.EmployeeID, year); err != nil {
		if !isUniqueViolation(err) {
			return err
		}
		c.logger.Warn("leave balances already seeded, skipping",
			zap.String("employee_id", event.EmployeeID),
		)
	}

	if err := c.fund.Enroll(ctx, event.EmployeeID); err != nil {
		if !isUniqueViolation(err) {
			return err
		}
		c.logger.Warn("provident fund account already open, skipping",
			zap.String("employee_id", event.EmployeeID),
		)
	}

	return nil
}

func (c *EmployeeCreatedConsumer) Close() error {
	return c.reader.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
