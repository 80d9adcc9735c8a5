package main

import (
	"context"

	boxofficehandler "cinehall/internal/boxoffice/handler"
	boxofficerepo "cinehall/internal/boxoffice/repository"
	boxofficeservice "cinehall/internal/boxoffice/service"
	boxofficevalidator "cinehall/internal/boxoffice/validator"
	cataloghandler "cinehall/internal/catalog/handler"
	catalogrepo "cinehall/internal/catalog/repository"
	catalogservice "cinehall/internal/catalog/service"
	catalogvalidator "cinehall/internal/catalog/validator"
	concessionshandler "cinehall/internal/concessions/handler"
	concessionsrepo "cinehall/internal/concessions/repository"
	concessionsservice "cinehall/internal/concessions/service"
	concessionsvalidator "cinehall/internal/concessions/validator"
	"cinehall/internal/payment"
	schedulinghandler "cinehall/internal/scheduling/handler"
	schedulingrepo "cinehall/internal/scheduling/repository"
	schedulingservice "cinehall/internal/scheduling/service"
	schedulingvalidator "cinehall/internal/scheduling/validator"
	"cinehall/pkg/app"
	"cinehall/pkg/config"
	"cinehall/pkg/contracts"
	"cinehall/pkg/events"
	"cinehall/pkg/store"
)

const ServiceName = "cinehall"

func main() {
	cfg := config.Load(ServiceName)
	ctx := context.Background()

	cfg.Log.Info("Starting CineHall engine")

	st := initStore(ctx, cfg)
	publisher := initPublisher(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, st, initHandlers(ctx, cfg, st, publisher)...)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
		cfg.GracefulShutdown()
	})
	serverApp.Run()
}

func initStore(ctx context.Context, cfg *config.Config) store.Store {
	switch cfg.StoreBackend {
	case "memory":
		cfg.Log.Info("Using in-memory store")
		return store.NewMemory()

	case "mongo":
		cfg.SetMongo()
		cfg.Log.Info("Using MongoDB store", "database", cfg.MongoDatabaseName)
		return store.NewMongo(cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.RequestTimeout, cfg.RequestTimeout)

	default:
		st, err := store.NewFile(cfg.StoreDir)
		if err != nil {
			cfg.Log.Fatal("Failed to open file store", "dir", cfg.StoreDir, "error", err)
		}
		cfg.Log.Info("Using file store", "dir", cfg.StoreDir)
		return st
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, order events disabled")
		return events.Nop{}
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event producer", "error", err)
	}
	producer.Use(events.LoggingMiddleware(cfg.Log))

	cfg.Log.Info("Event producer initialized", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	return producer
}

func initHandlers(ctx context.Context, cfg *config.Config, st store.Store, publisher events.Publisher) []contracts.Handler {
	movieRepo, err := catalogrepo.NewMovieRepository(ctx, st, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to load movie repository", "error", err)
	}
	auditoriumRepo, err := catalogrepo.NewAuditoriumRepository(ctx, st, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to load auditorium repository", "error", err)
	}
	personRepo, err := catalogrepo.NewPersonRepository(ctx, st, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to load person repository", "error", err)
	}
	screeningRepo, err := schedulingrepo.NewScreeningRepository(ctx, st, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to load screening repository", "error", err)
	}
	orderRepo, err := concessionsrepo.NewOrderRepository(ctx, st, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to load order repository", "error", err)
	}

	catalogSvc := catalogservice.NewCatalogService(
		movieRepo, auditoriumRepo, personRepo,
		catalogvalidator.NewCatalogValidator(cfg.Log),
		cfg,
	)
	if err := catalogSvc.SeedDefaultAuditoriums(ctx); err != nil {
		cfg.Log.Fatal("Failed to seed default auditoriums", "error", err)
	}

	schedulingSvc := schedulingservice.NewSchedulingService(
		screeningRepo, movieRepo, auditoriumRepo, personRepo,
		schedulingvalidator.NewScreeningValidator(cfg.Log),
		cfg,
	)

	gate := payment.NewGate(payment.Config{
		SettlementDelayMin:   cfg.SettlementDelayMin,
		SettlementDelayMax:   cfg.SettlementDelayMax,
		LivenessPollInterval: cfg.LivenessPollInterval,
		GraceDelay:           cfg.SettlementGraceDelay,
	}, cfg.Log)

	boxOfficeSvc := boxofficeservice.NewBoxOfficeService(
		screeningRepo, movieRepo, personRepo,
		boxofficerepo.NewTicketRepository(st),
		gate,
		boxofficevalidator.NewPurchaseValidator(cfg.Log),
		cfg,
	)

	priceRepo := concessionsrepo.NewPriceListRepository(st, cfg.Log)
	if err := priceRepo.Seed(ctx); err != nil {
		cfg.Log.Fatal("Failed to seed price list", "error", err)
	}
	notificationRepo := concessionsrepo.NewNotificationRepository(st)
	pipeline := concessionsservice.NewPipeline(notificationRepo, publisher, cfg)

	concessionsSvc := concessionsservice.NewConcessionsService(
		orderRepo, priceRepo, notificationRepo, personRepo,
		pipeline,
		concessionsvalidator.NewOrderValidator(cfg.Log),
		cfg,
	)

	return []contracts.Handler{
		cataloghandler.NewCatalogHandler(catalogSvc, cfg.Log),
		schedulinghandler.NewScreeningHandler(schedulingSvc, cfg.Log),
		boxofficehandler.NewPurchaseHandler(boxOfficeSvc, cfg.Log),
		concessionshandler.NewOrderHandler(concessionsSvc, cfg.Log),
	}
}
