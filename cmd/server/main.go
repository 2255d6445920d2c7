package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/livetally/livetally/internal/common/clock"
	"github.com/livetally/livetally/internal/common/code"
	"github.com/livetally/livetally/internal/common/uuid"
	wsHandler "github.com/livetally/livetally/internal/handlers/ws"
	sessionRepo "github.com/livetally/livetally/internal/repositories/session"
	"github.com/livetally/livetally/internal/services/broadcast"
	"github.com/livetally/livetally/internal/services/poll"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	systemClock := &clock.DefaultClock{}

	// The session table lives here for the process's lifetime; there is
	// no cross-process persistence
	registry, err := sessionRepo.NewMemory(&sessionRepo.Config{
		CodeGenerator: code.New(),
		Clock:         systemClock,
	})
	if err != nil {
		log.Fatalf("Failed to create session registry: %v", err)
	}

	broadcaster, err := broadcast.New(&broadcast.Config{
		BufferSize: getEnvInt("BROADCAST_BUFFER", 16),
	})
	if err != nil {
		log.Fatalf("Failed to create broadcaster: %v", err)
	}

	pollSvc, err := poll.New(&poll.Config{
		DefaultTimeLimit: time.Duration(getEnvInt("DEFAULT_TIME_LIMIT_SECONDS", 30)) * time.Second,
		Registry:         registry,
		Broadcaster:      broadcaster,
		Clock:            systemClock,
		UUIDGenerator:    uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create poll service: %v", err)
	}

	handler, err := wsHandler.New(&wsHandler.Config{
		PollService:   pollSvc,
		Broadcaster:   broadcaster,
		UUIDGenerator: uuid.New(),
		SendBuffer:    getEnvInt("SEND_BUFFER", 32),
	})
	if err != nil {
		log.Fatalf("Failed to create websocket handler: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:    getEnv("LISTEN_ADDR", ":3001"),
		Handler: mux,
	}

	go func() {
		log.Printf("Poll session server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
