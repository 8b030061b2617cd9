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

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/store"
)

const sessionSweepInterval = time.Minute

func main() {
	cfg, err := config.FromArgs(os.Args[1:])
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	content, err := LoadContent(cfg.ContentPath)
	if err != nil {
		log.Fatal("Failed to load content: ", err)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Printf("Warning: database unavailable, theme preferences kept in memory: %v", err)
		db = nil
	}

	s := newServer(cfg, content, db)
	go s.cleanupOldVisitorData()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go s.sessions.run(ctx, sessionSweepInterval, cfg.Session.IdleTimeout)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.routes(),
	}
	go func() {
		log.Printf("Portfolio listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	s.sessions.closeAll()
	if db != nil {
		db.Close()
	}
}
