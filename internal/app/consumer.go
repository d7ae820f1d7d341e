package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-hrm/internal/config"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka/consumer"
	"go-hrm/internal/providentfund"
	"go-hrm/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer reacts to employee_created events: seeds the new employee's
// leave balances and opens their provident fund account.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	leaveRepo := leave.NewRepository(gormDB)
	leaveService := leave.NewService(sqlDB, leaveRepo)

	fundRepo := providentfund.NewRepository(gormDB)
	fundService := providentfund.NewService(sqlDB, fundRepo)

	onboarding := consumer.NewEmployeeCreatedConsumer(
		cfg.Kafka.Brokers,
		"go-hrm-employee-onboarding",
		leaveService,
		fundService,
	)
	defer onboarding.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go onboarding.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
