package main

import (
	"context"
	"droboapp-panel/controller"
	"droboapp-panel/models"
	"droboapp-panel/utils"
	"droboapp-panel/utils/logger"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	Init()

	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Debugf("App loaded: %s", utils.PrintPrettyJSON(config.Identity()))

	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := controller.NewController(config, appLogger)
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}

	// Start the state monitor (cron job) in background
	if err := c.Monitor.StartInBackground(); err != nil {
		log.Fatalf("Failed to start state monitor: %v", err)
	}
	defer func() {
		if err := c.Monitor.Stop(); err != nil {
			appLogger.Warnf("Failed to stop state monitor: %v", err)
		}
	}()

	r := gin.New()
	if err := c.RegisterRoutes(ctx, config, r); err != nil {
		appLogger.Errorf("Control panel stopped: %v", err)
	}
}
