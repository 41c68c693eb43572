package main

import (
	"fmt"
	"net/http"
	"os"

	_ "github.com/fraudshield/go-fraud-screening-pipeline/docs"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/app"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
)

// @title           Fraud Screening Pipeline
// @version         1.0
// @description     A screening service that runs user-reported messages and screenshots through rate limiting, content sanitization, and an LLM risk-scoring backend.

// @contact.name   API Support
// @contact.url    https://github.com/fraudshield/go-fraud-screening-pipeline

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8082
// @BasePath  /

func main() {
	if err := config.LoadEnvFromMultiplePaths(); err != nil {
		_, _ = os.Stderr.WriteString("WARNING: failed to load .env files: " + err.Error() + "\n")
	}

	if err := logger.InitFromEnv(); err != nil {
		_, _ = os.Stderr.WriteString("FATAL: Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	application, err := app.NewApp()
	if err != nil {
		logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer application.Shutdown()

	handler := application.SetupRoutes()

	addr := fmt.Sprintf("%s:%d", application.Config.Server.Host, application.Config.Server.Port)
	logger.Info("Server starting",
		"address", addr,
		"model", application.Config.Backend.Model,
		"backend_configured", application.Config.Backend.IsConfigured())

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  application.Config.Server.ReadTimeout,
		WriteTimeout: application.Config.Server.WriteTimeout,
		IdleTimeout:  application.Config.Server.IdleTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
