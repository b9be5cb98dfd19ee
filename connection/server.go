package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"agencydash/config"
	"agencydash/controller"
	"agencydash/controller/auth"
	"agencydash/controller/client"
	"agencydash/controller/dashboard"
	"agencydash/controller/employee"
	"agencydash/controller/export"
	"agencydash/controller/task"
	"agencydash/dto"
	"agencydash/middleware"
	"agencydash/model"
	"agencydash/report"
	"agencydash/repository"
	"agencydash/services"
)

const shutdownTimeout = 5 * time.Second

// Backend is the store selected by STORE_DRIVER plus the managed-auth
// verifier when Firebase is in use.
type Backend struct {
	Store    *repository.Store
	IDTokens services.IDTokenVerifier
	close    func() error
}

func OpenBackend(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Backend, error) {
	if cfg.StoreDriver == config.DriverMemory {
		logger.Warn("using the in-memory store; data is lost on exit")
		return &Backend{Store: repository.NewMemoryStore()}, nil
	}

	fb, err := FBConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Firestore connection successful")
	return &Backend{
		Store:    repository.NewFirestoreStore(fb.Firestore),
		IDTokens: fb.Auth,
		close:    fb.Close,
	}, nil
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// NewDeps wires the services behind the controllers.
func NewDeps(cfg *config.Config, logger *logrus.Logger, backend *Backend) (*controller.Deps, error) {
	store := backend.Store
	tokens := services.NewTokenService(cfg.JWT)
	guard := services.NewLoginGuard(store.LoginGuard, cfg.LoginGuard)

	deps := &controller.Deps{Tokens: tokens}

	authOpts := []services.AuthOption{services.WithLogger(logger)}
	if backend.IDTokens != nil {
		authOpts = append(authOpts, services.WithIDTokenVerifier(backend.IDTokens))
	}
	if cfg.Recaptcha.Enabled {
		deps.Captcha = services.NewRecaptchaVerifier(cfg)
		authOpts = append(authOpts, services.WithCaptcha(deps.Captcha))
	}
	deps.Auth = services.NewAuthService(store.Employees, guard, tokens, cfg.DashboardOverrides(), authOpts...)

	deps.Tasks = services.NewTaskService(store)
	deps.Clients = services.NewClientService(store)
	deps.Employees = services.NewEmployeeService(store.Employees)
	deps.Dashboard = services.NewDashboardService(deps.Tasks, deps.Clients)

	reports, err := report.NewRenderer(cfg.Report.PDFFontFile)
	if err != nil {
		return nil, err
	}
	deps.Reports = reports

	if cfg.RateLimit.Enabled {
		limit, err := middleware.RateLimit(cfg.RateLimit.Auth)
		if err != nil {
			return nil, err
		}
		deps.AuthLimit = limit
	}
	return deps, nil
}

func corsConfig(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func NewRouter(cfg *config.Config, logger *logrus.Logger, deps *controller.Deps) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	router := gin.New()
	router.Use(middleware.WithLogger(logger), gin.Recovery())
	if cfg.Metrics.Enabled {
		metrics := middleware.NewMetrics()
		router.Use(metrics.Middleware())
		router.GET(cfg.Metrics.Path, metrics.Handler())
	}
	router.Use(corsConfig(cfg.CORSOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})

	auth.SignInController(router, deps)
	auth.IDTokenController(router, deps)
	auth.SessionController(router, deps)
	auth.CaptchaController(router, deps)
	client.ClientController(router, deps)
	task.TaskController(router, deps)
	employee.EmployeeController(router, deps)
	dashboard.DashboardController(router, deps)
	export.ExportController(router, deps)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "redirect": model.LoginPath})
	})
	return router, nil
}

// StartServer serves until ctx is cancelled, then shuts down gracefully.
func StartServer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	gin.SetMode(cfg.GinMode)

	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	deps, err := NewDeps(cfg, logger, backend)
	if err != nil {
		return err
	}
	router, err := NewRouter(cfg, logger, deps)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", httpServer.Addr).Info("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
