package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskdeck/internal/api"
	"taskdeck/internal/app/service"
	"taskdeck/internal/common/security"
	"taskdeck/internal/domain/model"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/platform/config"
	"taskdeck/internal/platform/storage"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	tokenAuth := security.NewTokenAuth(cfg.JWTKey, cfg.JWTExp)

	// 3. Initialize Collections & Repositories
	taskRepo := repository.NewFileTaskRepository(storage.NewCollection[model.Task](cfg.TasksFile))
	userRepo := repository.NewFileUserRepository(storage.NewCollection[model.User](cfg.UsersFile))

	// 4. Initialize Services
	authService := service.NewAuthService(userRepo, tokenAuth)
	taskService := service.NewTaskService(taskRepo)

	// 5. Initialize Router & HTTP Server
	router := api.NewRouter(tokenAuth, authService, taskService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
