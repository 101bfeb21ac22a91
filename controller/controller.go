package controller

import (
	"context"
	"droboapp-panel/middelware"
	"droboapp-panel/models"
	"droboapp-panel/services"
	"droboapp-panel/utils/logger"
	"droboapp-panel/worker"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Panel    *PanelController
	Auth     *AuthController
	Status   *StatusController
	Monitor  *worker.Service
	sessions *middelware.SessionManager
	config   *models.Config
	logger   logger.Logger
}

func NewController(cfg *models.Config, log logger.Logger) (*Controller, error) {
	statusManager := worker.NewStatusManager(cfg.StatusFile, cfg.AppID)
	runner := services.NewExecRunner(cfg.CommandTimeout, log)
	container := services.NewService(cfg, runner, statusManager, log)
	appService := container.GetAppControlService()

	monitor, err := worker.NewService(cfg, appService, statusManager, log)
	if err != nil {
		return nil, err
	}

	sessions := middelware.NewSessionManager(cfg, log)
	identity := cfg.Identity()

	return &Controller{
		Panel:    NewPanelController(appService, container.GetContentService(), log, cfg.AuthEnabled()),
		Auth:     NewAuthController(sessions, identity, log),
		Status:   NewStatusController(monitor, identity, log),
		Monitor:  monitor,
		sessions: sessions,
		config:   cfg,
		logger:   log,
	}, nil
}

// Routes registers every route and middleware on r
func (c *Controller) Routes(r *gin.Engine) {
	logging := middelware.NewLoggingMiddleware(c.logger, "/health")
	r.Use(logging.Recovery(), logging.StructuredLogger(), middelware.NoCache())

	r.GET("/health", c.Status.Health)

	r.GET("/login", c.Auth.LoginForm)
	r.POST("/login", c.Auth.Login)
	r.GET("/logout", c.Auth.Logout)

	panel := r.Group("/", c.sessions.AuthMiddleware())
	panel.GET("/", c.Panel.Index)
	panel.POST("/", c.Panel.Index)

	api := r.Group(c.config.BasePath, middelware.NewCORSMiddleware(c.config).CORS(), c.sessions.AuthMiddleware())
	api.GET("/status", c.Status.GetStatus)
	api.OPTIONS("/status", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	// Static assets for the page (bootstrap, jquery, logos)
	if c.config.StaticDir != "" {
		for _, dir := range []string{"css", "js", "img"} {
			path := filepath.Join(c.config.StaticDir, dir)
			if _, err := os.Stat(path); err == nil {
				r.Static("/"+dir, path)
			}
		}
	}
}

// RegisterRoutes registers the routes and serves until ctx is cancelled
func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine) error {
	c.Routes(r)

	srv := &http.Server{
		Addr:              config.AppHost + ":" + config.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Infof("Starting control panel for %s on %s", config.AppName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.logger.Info("Shutting down control panel")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
