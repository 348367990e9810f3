package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leadgrid/ingestion-api/internal/config"
	"github.com/leadgrid/ingestion-api/internal/infra/database"
	"github.com/leadgrid/ingestion-api/internal/infra/http/handlers"
	"github.com/leadgrid/ingestion-api/internal/infra/http/middleware"
	"github.com/leadgrid/ingestion-api/internal/infra/queue"
	"github.com/leadgrid/ingestion-api/internal/logging"
	"github.com/leadgrid/ingestion-api/internal/usecase"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	// Without DATABASE_URL the service runs storeless: reads return
	// empty pages and writes answer 503. A configured but unreachable
	// store is a deployment fault and fails startup.
	var db *sql.DB
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, running storeless")
	} else {
		var err error
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	leadRepo := database.NewLeadRepository(db)

	// The broker is optional; ingestion works without it and skips the
	// lead.ingested events.
	var producer usecase.QueueProducerInterface
	if cfg.RabbitMQURL != "" {
		mq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Error("rabbitmq connection failed, events disabled", "error", err)
		} else {
			defer mq.Close()
			producer = queue.NewProducer(mq.Ch)
		}
	}

	ingestUC := usecase.NewIngestLeadUseCase(leadRepo, producer, log)
	listUC := usecase.NewListLeadsUseCase(leadRepo)
	statsUC := usecase.NewLeadStatsUseCase(leadRepo)

	leadHandler := handlers.NewLeadHandler(ingestUC, log)
	queryHandler := handlers.NewQueryHandler(listUC, log)
	statsHandler := handlers.NewStatsHandler(statsUC, log)
	healthHandler := handlers.NewHealthHandler(leadRepo)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Post("/v1/lead", leadHandler.Ingest)
	r.Get("/api/leads", queryHandler.List)
	r.Get("/api/leads/raw/count", statsHandler.RawCount)
	r.Get("/api/leads/by-source", statsHandler.BySource)
	r.Get("/api/leads/status-funnel", statsHandler.StatusFunnel)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Info("lead ingestion API listening", "addr", addr, "db", leadRepo.Available())
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
