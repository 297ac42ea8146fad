// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/ecooy/backend/config"
	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/usecase/auth"
	"github.com/ecooy/backend/internal/application/usecase/dashboard"
	"github.com/ecooy/backend/internal/application/usecase/goal"
	"github.com/ecooy/backend/internal/application/usecase/notification"
	"github.com/ecooy/backend/internal/application/usecase/profile"
	"github.com/ecooy/backend/internal/application/usecase/transaction"
	"github.com/ecooy/backend/internal/infra/cache"
	"github.com/ecooy/backend/internal/infra/db"
	"github.com/ecooy/backend/internal/infra/server/router"
	"github.com/ecooy/backend/internal/integration/adapters"
	"github.com/ecooy/backend/internal/integration/email"
	"github.com/ecooy/backend/internal/integration/email/templates"
	"github.com/ecooy/backend/internal/integration/entrypoint/controller"
	"github.com/ecooy/backend/internal/integration/entrypoint/middleware"
	"github.com/ecooy/backend/internal/integration/messaging"
	"github.com/ecooy/backend/internal/integration/persistence"
	"github.com/ecooy/backend/internal/integration/realtime"
	"github.com/ecooy/backend/internal/integration/reminder"
)

const shutdownTimeout = 10 * time.Second

// Options adjusts how the injector wires its dependencies.
type Options struct {
	// Now replaces the clock used by the salary reminder and the dashboard.
	Now func() time.Time
	// IdentityVerifier replaces the Google ID token verifier.
	IdentityVerifier adapter.FederatedIdentityVerifier
}

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	Database *db.Database
	Redis    *redis.Client
	Router   *router.Router
	Engine   *gin.Engine

	// EmailWorker is nil when no email provider is configured.
	EmailWorker      *email.Worker
	ReminderWorker   *reminder.Worker
	SalaryReminder   *notification.SalaryReminderUseCase
	LoginRateLimiter *middleware.RateLimiter

	amqpPublisher *messaging.AMQPPublisher
}

// NewInjector connects to PostgreSQL and Redis and wires the application.
func NewInjector(ctx context.Context, cfg *config.Config) (*Injector, error) {
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	inj, err := New(cfg, database, redisClient, Options{})
	if err != nil {
		_ = redisClient.Close()
		_ = database.Close()
		return nil, err
	}
	return inj, nil
}

// New wires the application around already opened connections.
func New(cfg *config.Config, database *db.Database, redisClient *redis.Client, opts Options) (*Injector, error) {
	gormDB := database.DB()

	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	profileRepo := persistence.NewProfileRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	goalRepo := persistence.NewGoalRepository(gormDB)
	notificationRepo := persistence.NewNotificationRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	// Change feed: redis drives live queries, AMQP carries domain events out
	changeFeed := realtime.NewRedisChangeFeed(redisClient, cfg.Realtime.ChannelPrefix)
	publishers := []adapter.ChangePublisher{changeFeed}

	var amqpPublisher *messaging.AMQPPublisher
	if cfg.AMQP.URL != "" {
		amqpPublisher = messaging.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		publishers = append(publishers, amqpPublisher)
	}
	publisher := realtime.NewFanoutPublisher(publishers...)

	// Adapters
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(&cfg.JWT, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	tipGenerator := adapters.NewGeminiTipService(&cfg.Gemini)

	var verifier adapter.FederatedIdentityVerifier = adapters.NewGoogleIdentityVerifier(cfg.Google.ClientID)
	if opts.IdentityVerifier != nil {
		verifier = opts.IdentityVerifier
	}

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, profileRepo, passwordService, tokenService, emailService, publisher, cfg.Email.AppBaseURL)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, profileRepo, passwordService, tokenService, publisher)
	federatedLoginUseCase := auth.NewFederatedLoginUseCase(userRepo, profileRepo, verifier, tokenService, emailService, publisher, cfg.Email.AppBaseURL)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService, userRepo, publisher)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService, publisher)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService, emailQueueRepo, publisher)
	getSessionUseCase := auth.NewGetSessionUseCase(userRepo)
	watchSessionUseCase := auth.NewWatchSessionUseCase(getSessionUseCase, changeFeed)
	updateDisplayNameUseCase := auth.NewUpdateDisplayNameUseCase(userRepo, profileRepo, publisher)

	// Profile use cases
	getProfileUseCase := profile.NewGetProfileUseCase(profileRepo)
	updateSettingsUseCase := profile.NewUpdateSettingsUseCase(profileRepo, publisher)
	setThemeUseCase := profile.NewSetThemeUseCase(profileRepo, publisher)
	toggleThemeUseCase := profile.NewToggleThemeUseCase(profileRepo, publisher)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, publisher)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, publisher)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, publisher)
	summaryUseCase := transaction.NewGetSummaryUseCase(transactionRepo)
	watchTransactionsUseCase := transaction.NewWatchTransactionsUseCase(listTransactionsUseCase, changeFeed)

	// Goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, publisher)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, publisher)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo, publisher)
	depositUseCase := goal.NewDepositUseCase(goalRepo, profileRepo, notificationRepo, emailService, publisher)
	watchGoalsUseCase := goal.NewWatchGoalsUseCase(listGoalsUseCase, changeFeed)

	// Notification use cases
	listNotificationsUseCase := notification.NewListNotificationsUseCase(notificationRepo)
	markReadUseCase := notification.NewMarkReadUseCase(notificationRepo, publisher)
	markAllReadUseCase := notification.NewMarkAllReadUseCase(notificationRepo, publisher)
	generateTipUseCase := notification.NewGenerateTipUseCase(profileRepo, transactionRepo, goalRepo, notificationRepo, tipGenerator, publisher)
	watchNotificationsUseCase := notification.NewWatchNotificationsUseCase(listNotificationsUseCase, changeFeed)
	salaryReminderUseCase := notification.NewSalaryReminderUseCase(profileRepo, notificationRepo, emailService, publisher)

	overviewUseCase := dashboard.NewGetOverviewUseCase(transactionRepo, profileRepo, goalRepo, notificationRepo)

	if opts.Now != nil {
		salaryReminderUseCase.WithClock(opts.Now)
		overviewUseCase.WithClock(opts.Now)
	}

	// Controllers
	heartbeat := cfg.Realtime.HeartbeatInterval
	controllers := router.Controllers{
		Health: controller.NewHealthController(
			database.HealthCheck,
			func(ctx context.Context) bool { return cache.HealthCheck(ctx, redisClient) },
		),
		Auth: controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			federatedLoginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
			forgotPasswordUseCase,
			resetPasswordUseCase,
			getSessionUseCase,
			watchSessionUseCase,
			heartbeat,
		),
		User: controller.NewUserController(
			getProfileUseCase,
			updateSettingsUseCase,
			setThemeUseCase,
			toggleThemeUseCase,
			updateDisplayNameUseCase,
			deleteAccountUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			getTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
			summaryUseCase,
			watchTransactionsUseCase,
			heartbeat,
		),
		Goal: controller.NewGoalController(
			listGoalsUseCase,
			createGoalUseCase,
			getGoalUseCase,
			updateGoalUseCase,
			deleteGoalUseCase,
			depositUseCase,
			watchGoalsUseCase,
			heartbeat,
		),
		Notification: controller.NewNotificationController(
			listNotificationsUseCase,
			markReadUseCase,
			markAllReadUseCase,
			generateTipUseCase,
			watchNotificationsUseCase,
			heartbeat,
		),
		Dashboard: controller.NewDashboardController(overviewUseCase),
		Ledger:    controller.NewLedgerController(transaction.NewSummarizeRecordsUseCase()),
	}

	// Middleware
	// Higher limits in test environments keep the feature suites from tripping the limiter
	var loginRateLimiter *middleware.RateLimiter
	if cfg.IsTest() {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(controllers, loginRateLimiter, authMiddleware)
	engine := r.Setup(cfg.Server.Environment)

	// Workers
	emailWorker, err := newEmailWorker(cfg, emailQueueRepo)
	if err != nil {
		return nil, err
	}

	return &Injector{
		Config:           cfg,
		Database:         database,
		Redis:            redisClient,
		Router:           r,
		Engine:           engine,
		EmailWorker:      emailWorker,
		ReminderWorker:   reminder.NewWorker(salaryReminderUseCase, cfg.Reminder.PollInterval),
		SalaryReminder:   salaryReminderUseCase,
		LoginRateLimiter: loginRateLimiter,
		amqpPublisher:    amqpPublisher,
	}, nil
}

func newEmailWorker(cfg *config.Config, queue adapter.EmailQueueRepository) (*email.Worker, error) {
	if cfg.Email.ResendAPIKey == "" && cfg.Email.ResendBaseURL == "" {
		slog.Warn("no email provider configured, emails stay queued")
		return nil, nil
	}

	sender, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, cfg.Email.FromName, cfg.Email.FromEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to create email client: %w", err)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	return email.NewWorker(queue, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	}), nil
}

// Run serves HTTP and runs the background workers until ctx is cancelled.
// The server then drains in-flight requests for up to ten seconds.
func (i *Injector) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	addr := fmt.Sprintf("%s:%d", i.Config.Server.Host, i.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      i.Engine,
		ReadTimeout:  i.Config.Server.ReadTimeout,
		WriteTimeout: i.Config.Server.WriteTimeout,
	}

	g.Go(func() error {
		slog.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		i.LoginRateLimiter.RunCleanup(ctx.Done())
		return nil
	})

	if i.EmailWorker != nil && i.Config.Email.WorkerEnabled {
		g.Go(func() error { return i.EmailWorker.Start(ctx) })
	}

	if i.Config.Reminder.Enabled {
		g.Go(func() error { return i.ReminderWorker.Start(ctx) })
	}

	if i.amqpPublisher != nil {
		g.Go(func() error { return i.amqpPublisher.Run(ctx) })
	}

	return g.Wait()
}

// Close releases the broker, redis and database connections.
func (i *Injector) Close() error {
	var errs []error
	if i.amqpPublisher != nil {
		errs = append(errs, i.amqpPublisher.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.Database != nil {
		errs = append(errs, i.Database.Close())
	}
	return errors.Join(errs...)
}
