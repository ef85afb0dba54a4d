package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/attendance"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/messaging/kafka"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/payroll"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/salaryprofile"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/connection"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/counter"
)

// RunConsumer starts every kafka consumer group: salary profile seeding on
// employee creation, hardware punch ingestion, and payslip generation after
// run approval.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	pdfDir := os.Getenv("PAYSLIP_PDF_DIR")
	if pdfDir == "" {
		pdfDir = filepath.Join("storage", "payslips")
	}

	profileRepo := salaryprofile.NewRepository(gormDB)
	profileService := salaryprofile.NewService(sqlDB, profileRepo)

	attendanceRepo := attendance.NewRepository(gormDB)
	attendanceService := attendance.NewService(sqlDB, attendanceRepo)

	componentRepo := salarycomponent.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	payrollSettingsRepo := payroll.NewSettingsRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	payrollService := payroll.NewService(
		sqlDB,
		payrollRepo,
		payrollSettingsRepo,
		counterRepo,
		outboxRepo,
		rdb,
		componentRepo,
		profileRepo,
		pdfDir,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	salaryprofile.NewEmployeeCreatedConsumer(
		kafkaBroker, "hrms-salary-profile", profileService,
	).Start(ctx)
	attendance.NewPunchConsumer(
		kafkaBroker, "hrms-attendance-punch", attendanceService,
	).Start(ctx)
	payroll.NewRunApprovedConsumer(
		kafkaBroker, "hrms-payroll-payslips", payrollService,
	).Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
