package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Werneck0live/estoque-automotivo/internal/broker"
	"github.com/Werneck0live/estoque-automotivo/internal/config"
	"github.com/Werneck0live/estoque-automotivo/internal/middleware"
	"github.com/Werneck0live/estoque-automotivo/internal/ws"
)

func main() {
	wscfg, err := config.LoadWSConfig()
	if err != nil {
		slog.Error("config_error", "err", err)
		os.Exit(1)
	}

	log := config.InitLogger(config.ParseLevel(wscfg.LogLevel), "ws")
	hub := ws.NewHub(log)
	go hub.Run()

	// Conecta no Rabbit e começa a consumir
	consumer, err := broker.NewConsumer(wscfg.RabbitURI, wscfg.RabbitQueue, "ws-consumer", wscfg.ConsumerPrefetch, log)
	if err != nil {
		log.Error("rabbit_consumer_start_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = consumer.Close() }()

	// encaminha mensagens do Rabbit para o hub
	go func() {
		consumer.Run(func(m broker.Mensagem) { hub.Broadcast(m.Tipo, m.Body) })
		log.Warn("deliveries_channel_closed")
	}()

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.Handler(hub, log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{
		Addr:              wscfg.Addr,
		Handler:           middleware.Logging(log)(mux),
		ReadHeaderTimeout: wscfg.ReadHeaderTimeout,
	}

	go func() {
		log.Info("ws_listen", "addr", wscfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), wscfg.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctx)
	hub.Stop()

	log.Info("stopped")
}
