package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"splittab/internal/config"
	"splittab/internal/db"
	"splittab/internal/handlers"
	"splittab/internal/logging"
	"splittab/internal/services"
	"splittab/internal/store"
	"splittab/internal/websocket"
)

func main() {
	logging.Setup()
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	expenses := store.NewExpenseStore(database)
	participants := store.NewParticipantStore(database)
	payments := store.NewPaymentStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	summary := services.NewSummaryService(users, expenses, participants, payments, hub)

	handler := handlers.New(cfg, txRunner, users, expenses, participants, summary, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("splittab API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
