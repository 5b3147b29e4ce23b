package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutricoach/config"
	dbpkg "nutricoach/db"
	"nutricoach/logger"
	"nutricoach/router"
	"nutricoach/session"
	"nutricoach/tools"

	"github.com/gin-gonic/gin"
)

// =====================
// ENV esperadas
// =====================
//
// - APP_PASSWORD          senha única de acesso (obrigatória)
// - SECRET_KEY            assina o cookie de sessão (se vazio, chave aleatória por processo)
// - OPENAI_API_KEY        (obrigatória)
// - OPENAI_PROJECT        (opcional)
// - ALLOWED_ORIGIN        origens CORS separadas por vírgula (default "*")
// - DATABASE_URL          sqlite:///app.db | postgres://...
// - PORT                  (default 5000)
//
// Demais variáveis em config/config.go.
// =====================

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("ERROR: logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.GeneratedSecret {
		appLog.Warn("SECRET_KEY not set, using a random key; sessions will not survive a restart")
	}

	database, err := dbpkg.Connect(cfg, appLog)
	if err != nil {
		appLog.Fatal("database connection failed", "error", err)
	}
	defer database.Close()

	completer, err := tools.NewOpenAIClient(tools.OpenAIConfig{
		ApiKey:  cfg.OpenAIKey,
		Project: cfg.OpenAIProject,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.OpenAITimeout,
	})
	if err != nil {
		appLog.Fatal("openai client", "error", err)
	}

	sessions := session.NewManager(cfg.AppPassword, cfg.SecretKey, cfg.Session.TTL)
	sessions.Secure = cfg.Session.Secure
	sessions.SameSite = session.ParseSameSite(cfg.Session.SameSite)

	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	router.Initialize(r, cfg, router.Dependencies{
		DB:        database,
		Completer: completer,
		Sessions:  sessions,
		Log:       appLog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("nutricoach listening", "port", cfg.ApiPort, "model", completer.Model())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("shutdown", "error", err)
	}
	appLog.Info("server stopped")
}
