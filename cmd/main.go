package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms/openai"

	"tandoor/internal/api"
	"tandoor/internal/catalog"
	"tandoor/internal/config"
	"tandoor/internal/database"
	"tandoor/internal/kitchen"
	"tandoor/internal/ledger"
	"tandoor/internal/memory"
	"tandoor/internal/monitoring"
	"tandoor/internal/notify"
	"tandoor/internal/orchestrator"
	"tandoor/internal/render"
	"tandoor/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	metricsPort := flag.Int("metrics-port", 0, "Metrics port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	log := logrus.WithField("component", "main")
	log.WithField("config", *configPath).Info("starting tandoor")

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer database.Close(db)

	if err := database.SeedIngredients(db); err != nil {
		log.WithError(err).Fatal("failed to seed ingredients")
	}

	sessions := memory.NewDBSessions(db)
	if err := sessions.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to migrate session storage")
	}

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	cat := catalog.New()
	led := ledger.New(ledger.NewDBSource(db))
	orders := store.NewOrderStore(db)

	var sleeper kitchen.Sleeper
	if cfg.Kitchen.InstantPhases {
		sleeper = kitchen.InstantSleeper{}
	}
	engine := kitchen.NewEngine(orders, led, cat, sleeper, notify.NewLogNotifier(), metrics, kitchen.Config{
		PrepTime:           cfg.Kitchen.PrepTime,
		CookTime:           cfg.Kitchen.CookTime,
		PlateTime:          cfg.Kitchen.PlateTime,
		DebitStockOnCreate: cfg.Kitchen.DebitStockOnCreate,
	})

	var renderer render.Renderer
	if cfg.LLM.Enabled {
		model, err := openai.New(openai.WithToken(cfg.LLM.OpenAIKey), openai.WithModel(cfg.LLM.Model))
		if err != nil {
			log.WithError(err).Warn("LLM renderer unavailable, using templates")
		} else {
			renderer = render.NewLLM(model, 5*time.Second)
		}
	}

	orch := orchestrator.New(cat, led, engine, sessions, renderer, metrics)
	server := api.NewServer(orch, cat, orders)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: promhttp.Handler(),
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("API server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("API server failed")
		}
	}()
	go func() {
		log.WithField("port", cfg.Server.MetricsPort).Info("metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("API server shutdown failed")
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("metrics server shutdown failed")
	}
	log.Info("goodbye")
}
