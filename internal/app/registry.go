package app

import (
	"database/sql"

	"go-hrm/internal/attendance"
	"go-hrm/internal/auth"
	"go-hrm/internal/authz"
	"go-hrm/internal/config"
	"go-hrm/internal/document"
	"go-hrm/internal/employee"
	"go-hrm/internal/grievance"
	"go-hrm/internal/leave"
	"go-hrm/internal/loan"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/organization"
	"go-hrm/internal/payroll"
	"go-hrm/internal/performance"
	"go-hrm/internal/providentfund"
	"go-hrm/internal/recruitment"
	"go-hrm/internal/settlement"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/training"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	organizationRepo := organization.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	settlementRepo := settlement.NewRepository(gormDB)
	loanRepo := loan.NewRepository(gormDB)
	fundRepo := providentfund.NewRepository(gormDB)
	grievanceRepo := grievance.NewRepository(gormDB)
	performanceRepo := performance.NewRepository(gormDB)
	trainingRepo := training.NewRepository(gormDB)
	recruitmentRepo := recruitment.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization ---
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return err
	}
	authzService := authz.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, cfg.JWT)
	organizationService := organization.NewService(organizationRepo, rdb)
	employeeService := employee.NewService(
		db, employeeRepo, authRepo, organizationService, counterRepo, outboxRepo, rdb,
	)
	attendanceService := attendance.NewService(db, attendanceRepo, cfg.Payroll.StandardHours)
	leaveService := leave.NewService(db, leaveRepo)
	loanService := loan.NewService(db, loanRepo)
	fundService := providentfund.NewService(db, fundRepo)
	payrollService := payroll.NewService(
		db, payrollRepo, employeeRepo, attendanceService, fundService, loanService,
		cfg.Payroll.WorkingDays,
	)
	settlementService := settlement.NewService(db, settlementRepo, counterRepo, loanService)
	grievanceService := grievance.NewService(grievanceRepo, counterRepo)
	performanceService := performance.NewService(performanceRepo)
	trainingService := training.NewService(trainingRepo)
	recruitmentService := recruitment.NewService(recruitmentRepo)
	documentService := document.NewService(documentRepo)

	// --- Handlers ---
	secureCookies := cfg.Server.Mode == "release"
	authHandler := auth.NewHandler(authService, secureCookies)
	organizationHandler := organization.NewHandler(organizationService)
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	payrollHandler := payroll.NewHandler(payrollService)
	settlementHandler := settlement.NewHandler(settlementService)
	loanHandler := loan.NewHandler(loanService)
	fundHandler := providentfund.NewHandler(fundService)
	grievanceHandler := grievance.NewHandler(grievanceService)
	performanceHandler := performance.NewHandler(performanceService)
	trainingHandler := training.NewHandler(trainingService)
	recruitmentHandler := recruitment.NewHandler(recruitmentService)
	documentHandler := document.NewHandler(documentService)

	// --- Routes ---
	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, authzService, cfg.JWT.Secret)

	protected := api.Group("",
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.ExtractUserID(),
		middleware.ContextLogger(zap.L()),
	)
	{
		organization.RegisterRoutes(protected, organizationHandler, authzService)
		employee.RegisterRoutes(protected, employeeHandler, authzService)
		attendance.RegisterRoutes(protected, attendanceHandler, authzService)
		leave.RegisterRoutes(protected, leaveHandler, authzService)
		payroll.RegisterRoutes(protected, payrollHandler, authzService, rdb)
		settlement.RegisterRoutes(protected, settlementHandler, authzService)
		loan.RegisterRoutes(protected, loanHandler, authzService)
		providentfund.RegisterRoutes(protected, fundHandler, authzService)
		grievance.RegisterRoutes(protected, grievanceHandler, authzService)
		performance.RegisterRoutes(protected, performanceHandler, authzService)
		training.RegisterRoutes(protected, trainingHandler, authzService)
		recruitment.RegisterRoutes(protected, recruitmentHandler, authzService)
		document.RegisterRoutes(protected, documentHandler, authzService)
	}

	return nil
}
