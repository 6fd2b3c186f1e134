// cmd/server/main.go
package main

import (
    "log"
    "net/http"

    "github.com/go-chi/chi/v5"
    "github.com/joho/godotenv"
    "github.com/prometheus/client_golang/prometheus"

    "github.com/elecmate/campaign-backend/internal/config"
    "github.com/elecmate/campaign-backend/internal/controller"
    "github.com/elecmate/campaign-backend/internal/db"
    "github.com/elecmate/campaign-backend/internal/events"
    "github.com/elecmate/campaign-backend/internal/mailer"
    "github.com/elecmate/campaign-backend/internal/metrics"
    "github.com/elecmate/campaign-backend/internal/middleware"
    "github.com/elecmate/campaign-backend/internal/model"
    "github.com/elecmate/campaign-backend/internal/repository"
    "github.com/elecmate/campaign-backend/internal/service"
)

func main() {
    // Load .env
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    cfg, err := config.Load()
    if err != nil {
        log.Fatal(err)
    }

    // Init DB
    conn, err := db.Open(cfg.DatabaseURL)
    if err != nil {
        log.Fatal(err)
    }
    if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
        log.Fatal(err)
    }

    profileRepo := &repository.ProfileRepository{DB: conn}
    identityRepo := &repository.IdentityRepository{DB: conn}
    sendLogRepo := &repository.SendLogRepository{DB: conn}

    var publisher events.Publisher = events.NopPublisher{}
    if cfg.AMQPURL != "" {
        amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL)
        if err != nil {
            log.Fatal(err)
        }
        defer amqpPublisher.Close()
        publisher = amqpPublisher
    } else {
        log.Println("⚠️ AMQP_URL not set, send events will not be published")
    }

    registry := prometheus.NewRegistry()
    collector := metrics.NewCollector(registry)

    campaignService := &service.CampaignService{
        Types:      model.DefaultCampaignTypes(),
        Profiles:   profileRepo,
        Identities: identityRepo,
        SendLog:    sendLogRepo,
        Sender:     mailer.NewResendSender(cfg.ResendAPIKey, cfg.FromAddress),
        Events:     publisher,
        Metrics:    collector,
        Pacer:      service.NewSendPacer(cfg.SendDelay),
        From:       cfg.FromAddress,
    }

    campaignController := &controller.CampaignController{
        CampaignService: campaignService,
        HistoryLimit:    cfg.HistoryLimit,
    }

    r := chi.NewRouter()
    r.Use(middleware.Recovery)
    r.Use(middleware.CORS)

    // Campaign action endpoint
    r.Route("/api/apprentice-campaign", func(r chi.Router) {
        r.Use(middleware.AdminOnly(cfg.JWTSecret, profileRepo))
        r.Post("/", campaignController.Handle)
    })

    r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
        w.WriteHeader(http.StatusOK)
        w.Write([]byte("ok"))
    })
    r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

    log.Println("🚀 Server running on :" + cfg.ServerPort)
    log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, r))
}
