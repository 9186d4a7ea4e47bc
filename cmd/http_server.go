package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/audit"
	auditPostgres "github.com/condosys/condo-management/internal/audit/postgres"
	"github.com/condosys/condo-management/internal/auth"
	authPostgres "github.com/condosys/condo-management/internal/auth/postgres"
	"github.com/condosys/condo-management/internal/budget"
	budgetPostgres "github.com/condosys/condo-management/internal/budget/postgres"
	"github.com/condosys/condo-management/internal/employee"
	employeePostgres "github.com/condosys/condo-management/internal/employee/postgres"
	"github.com/condosys/condo-management/internal/function"
	functionPostgres "github.com/condosys/condo-management/internal/function/postgres"
	"github.com/condosys/condo-management/internal/group"
	groupPostgres "github.com/condosys/condo-management/internal/group/postgres"
	"github.com/condosys/condo-management/internal/meeting"
	meetingPostgres "github.com/condosys/condo-management/internal/meeting/postgres"
	"github.com/condosys/condo-management/internal/notice"
	noticePostgres "github.com/condosys/condo-management/internal/notice/postgres"
	"github.com/condosys/condo-management/internal/patrimony"
	patrimonyPostgres "github.com/condosys/condo-management/internal/patrimony/postgres"
	"github.com/condosys/condo-management/internal/permission"
	permissionPostgres "github.com/condosys/condo-management/internal/permission/postgres"
	"github.com/condosys/condo-management/internal/provider"
	providerPostgres "github.com/condosys/condo-management/internal/provider/postgres"
	"github.com/condosys/condo-management/internal/residence"
	residencePostgres "github.com/condosys/condo-management/internal/residence/postgres"
	"github.com/condosys/condo-management/internal/scheduling"
	schedulingPostgres "github.com/condosys/condo-management/internal/scheduling/postgres"
	"github.com/condosys/condo-management/internal/transport"
	"github.com/condosys/condo-management/internal/transport/rest"
	"github.com/condosys/condo-management/internal/user"
	userPostgres "github.com/condosys/condo-management/internal/user/postgres"
	"github.com/condosys/condo-management/internal/visitor"
	visitorPostgres "github.com/condosys/condo-management/internal/visitor/postgres"
	"github.com/condosys/condo-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: deps.DB.DB}), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open gorm over pgx: %w", err)
	}

	lg := deps.Logger
	base := transport.NewBaseHandler(lg)
	sec := deps.Config.Security

	// Auth and permission engine.
	authRepo := authPostgres.NewAuthRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		sec.AccessTokenSecret,
		sec.RefreshTokenSecret,
		sec.AccessTokenDuration,
		sec.RefreshTokenDuration,
	)
	engine := auth.NewEngine(authRepo, lg)
	rbac := auth.NewRBACAuthorization(engine, lg)
	authService := auth.NewService(authRepo, tokenGen, engine, sec.BCryptCost)
	authHandler := auth.NewHandler(authService)

	// Audit recorder, shared by every audited domain service.
	auditRepo := auditPostgres.NewAuditRepository(gormDB)
	auditService := audit.NewService(auditRepo, lg)
	auditHandler := audit.NewHandler(base, auditService)

	userService := user.NewService(userPostgres.NewUserRepository(gormDB), sec.BCryptCost, lg)
	groupService := group.NewService(groupPostgres.NewGroupRepository(gormDB), lg)
	functionService := function.NewService(functionPostgres.NewFunctionRepository(gormDB), lg)
	permissionService := permission.NewService(permissionPostgres.NewPermissionRepository(gormDB), lg)
	residenceService := residence.NewService(residencePostgres.NewResidenceRepository(gormDB), lg)
	providerService := provider.NewService(providerPostgres.NewProviderRepository(gormDB), lg)
	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(gormDB), auditService, lg)
	patrimonyService := patrimony.NewService(patrimonyPostgres.NewPatrimonyRepository(gormDB), auditService, lg)
	schedulingService := scheduling.NewService(
		schedulingPostgres.NewAreaRepository(gormDB),
		schedulingPostgres.NewSchedulingRepository(gormDB),
		lg,
	)
	budgetService := budget.NewService(budgetPostgres.NewBudgetRepository(gormDB), auditService, lg)
	meetingService := meeting.NewService(
		meetingPostgres.NewMeetingRepository(gormDB),
		meetingPostgres.NewMinuteRepository(gormDB),
		auditService,
		lg,
	)
	noticeService := notice.NewService(noticePostgres.NewNoticeRepository(gormDB), auditService, lg)
	visitorService := visitor.NewService(visitorPostgres.NewVisitorRepository(gormDB), lg)

	handlers := rest.Handlers{
		Auth:       authHandler,
		User:       user.NewHandler(base, userService),
		Group:      group.NewHandler(base, groupService),
		Function:   function.NewHandler(base, functionService),
		Permission: permission.NewHandler(base, permissionService),
		Residence:  residence.NewHandler(base, residenceService),
		Provider:   provider.NewHandler(base, providerService),
		Employee:   employee.NewHandler(base, employeeService),
		Patrimony:  patrimony.NewHandler(base, patrimonyService),
		Scheduling: scheduling.NewHandler(base, schedulingService),
		Budget:     budget.NewHandler(base, budgetService),
		Meeting:    meeting.NewHandler(base, meetingService),
		Notice:     notice.NewHandler(base, noticeService),
		Visitor:    visitor.NewHandler(base, visitorService),
		Audit:      auditHandler,
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, rbac, auditService, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx-backed connection pool used by both sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
