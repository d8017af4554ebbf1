// Package main is the entry point for the event registration API server.
//
// @title Event Registration API
// @version 1.0
// @description Backend for event registration with capacity management, waitlists, discount codes, and cancellation policies.
// @BasePath /api
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventregistration/config"
	delivery "eventregistration/internal/delivery/http"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/repository/postgres"
	"eventregistration/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	store := postgres.NewStore(db)

	eventSvc := services.NewEventService(store)
	ticketTypeSvc := services.NewTicketTypeService(store)
	registrationSvc := services.NewRegistrationService(store)
	waitlistSvc := services.NewWaitlistService(store)
	discountSvc := services.NewDiscountService(store)
	policySvc := services.NewCancellationPolicyService(store)
	capacitySvc := services.NewCapacityService(store)
	exportSvc := services.NewExportService(store)

	mux := delivery.NewRouter(delivery.Controllers{
		Events:             controllers.NewEventController(logger, eventSvc),
		TicketTypes:        controllers.NewTicketTypeController(logger, ticketTypeSvc),
		Registrations:      controllers.NewRegistrationController(logger, registrationSvc),
		Waitlist:           controllers.NewWaitlistController(logger, waitlistSvc),
		Discounts:          controllers.NewDiscountController(logger, discountSvc),
		CancellationPolicy: controllers.NewCancellationPolicyController(logger, policySvc),
		Capacity:           controllers.NewCapacityController(logger, capacitySvc),
		Export:             controllers.NewExportController(logger, exportSvc),
	})

	var handler http.Handler = mux
	handler = middleware.Logging(logger, handler)
	handler = middleware.CORS(cfg.CORSOrigins, handler)
	handler = middleware.RequestID(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown", "err", err)
			os.Exit(1)
		}
	}
}
