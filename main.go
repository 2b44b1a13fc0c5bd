package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saylorscope/config"
	httpLayer "saylorscope/http"
	"saylorscope/ratelimit"
	"saylorscope/service"
)

func main() {
	configPath := flag.String("config", "saylorscope.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		log.Println("Warning: ANTHROPIC_API_KEY is not set; estimation calls will fail upstream")
	}

	var store ratelimit.CounterStore
	if cfg.Redis.Addr != "" {
		store = ratelimit.NewRedisStore(cfg.Redis.Addr)
		log.Printf("Rate-limit counters backed by Redis at %s", cfg.Redis.Addr)
	} else {
		store = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.NewLimiter(store, cfg.RateLimit.Limit, cfg.RateLimit.Window())

	llm := service.NewAnthropicClient(
		apiKey,
		cfg.Anthropic.APIURL,
		cfg.Anthropic.Model,
		cfg.Anthropic.MaxTokens,
		cfg.Anthropic.Timeout(),
	)

	projectionService := service.NewProjectionService()
	projectionHandler := httpLayer.NewProjectionHandler(projectionService)

	estimationService := service.NewEstimationService(llm, limiter)
	estimationHandler := httpLayer.NewEstimationHandler(estimationService)

	mux := http.NewServeMux()
	mux.HandleFunc("/asset/project", projectionHandler.Project)
	mux.HandleFunc("/asset/compare", projectionHandler.Compare)
	mux.HandleFunc("/asset/estimate", estimationHandler.Estimate)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("SaylorScope API listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
