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

	"mot3adev/appclient"
	"mot3adev/config"
	"mot3adev/logger"
	"mot3adev/modelapi/geminiapi"
	"mot3adev/modelapi/openaiapi"
	"mot3adev/statestore"
	"mot3adev/telegram"
	"mot3adev/webapi"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperdxio/opentelemetry-logs-go/exporters/otlp/otlplogs"
	sdk "github.com/hyperdxio/opentelemetry-logs-go/sdk/logs"
	"github.com/hyperdxio/otel-config-go/otelconfig"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration - %v", err)
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		log.Fatalf("Error setting up OTel SDK - %e", err)
	}
	defer otelShutdown()
	ctx := context.Background()

	logExporter, _ := otlplogs.NewExporter(ctx)
	loggerProvider := sdk.NewLoggerProvider(sdk.WithBatcher(logExporter))
	defer loggerProvider.Shutdown(ctx)

	LogMiddleware := logger.Connect(logger.LoggerConnectProps{Production: cfg.Production, LoggerProvider: loggerProvider})
	Logger := LogMiddleware.Logger(ctx)

	store, err := statestore.Connect(ctx, statestore.StoreConnectProps{
		Logger: LogMiddleware,
		Path:   cfg.StatePath,
	})
	if err != nil {
		Logger.Fatal("Could not open state store", zap.Error(err))
	}
	defer store.Close()

	gemini := geminiapi.Connect(ctx, geminiapi.GeminiConnectProps{Logger: LogMiddleware, Model: cfg.GeminiModel})
	speech := openaiapi.Connect(ctx, openaiapi.OpenAIConnectProps{Logger: LogMiddleware})

	api := webapi.Connect(webapi.WebAPIConnectProps{
		Logger:    LogMiddleware,
		Generator: gemini,
		Speech:    speech,
	})

	r := chi.NewRouter()
	r.Use(requestLoggerMiddleware(LogMiddleware))
	r.Mount("/api", api.Router())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// The Telegram surface goes through the same HTTP API as the web
	// client so both share one generation contract.
	client := appclient.Connect(appclient.ClientConnectProps{
		Logger:  LogMiddleware,
		BaseURL: "http://localhost:" + cfg.Port,
		Store:   store,
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		Logger.Info("[Server] Listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if os.Getenv("TELEGRAM_BOT_TOKEN") != "" {
		bot := telegram.Connect(ctx, telegram.TelegramConnectProps{Logger: LogMiddleware, Client: client, Store: store})
		g.Go(func() error {
			bot.Listen(gCtx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		Logger.Fatal("[Server] Shut down with error", zap.Error(err))
	}
	Logger.Info("[Server] Shut down cleanly")
}

func requestLoggerMiddleware(logger *logger.LogMiddleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger.Logger(ctx).Info("Request Received", zap.String("url", r.URL.Path), zap.String("method", r.Method))
			next.ServeHTTP(w, r)
			logger.Logger(ctx).Info("Request Completed", zap.String("path", r.URL.Path), zap.String("method", r.Method))
		})
	}
}
