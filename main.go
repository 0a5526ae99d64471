package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"language-companion-api/auth"
	"language-companion-api/config"
	"language-companion-api/db"
	"language-companion-api/dictionary"
	"language-companion-api/handlers"
	"language-companion-api/jobs"
	"language-companion-api/quiz"
	"language-companion-api/utils"
)

func main() {
	// Set up logging with timestamps
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	utils.LogStartup("Language Companion API starting...")

	cfg := config.Load()

	utils.LogStartup("Initializing database connection...")
	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize database: %v", err)
	}

	sessionStore := auth.NewSessionStore(cfg.SessionTTL, cfg.SessionSweep)

	utils.LogStartup("Loading Japanese analyzer dictionary...")
	analyzer, err := dictionary.NewAnalyzer()
	if err != nil {
		// Word enrichment is optional; everything else works without it.
		utils.LogError("Failed to initialize analyzer, readings disabled: %v", err)
		analyzer = nil
	}

	quizManager := quiz.NewManager(database, nil)

	var jobManager *jobs.JobManager
	if cfg.RedisURL != "" {
		jobManager = jobs.NewJobManager(cfg.RedisURL, cfg.ExportDir, database)
		jobManager.RegisterHandlers()
		go func() {
			if err := jobManager.Start(); err != nil {
				utils.LogError("Job queue worker stopped: %v", err)
			}
		}()
	} else {
		utils.LogStartup("REDIS_URL not set, export jobs disabled")
	}

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		utils.LogShutdown("Received shutdown signal...")
		sessionStore.Stop()
		if jobManager != nil {
			jobManager.Stop()
		}
		if err := database.Close(); err != nil {
			utils.LogError("Error closing database: %v", err)
		} else {
			utils.LogShutdown("Database connection closed successfully")
		}
		os.Exit(0)
	}()

	utils.LogStartup("Setting up API routes...")
	router := handlers.NewRouter(database, sessionStore, quizManager, analyzer, jobManager, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.LogStartup("Server ready to accept connections at http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[FATAL] Server failed to start: %v", err)
	}
}
