package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
	"github.com/akashbangaru2005/pro-math-calculator/internal/commands"
	"github.com/akashbangaru2005/pro-math-calculator/internal/config"
	"github.com/akashbangaru2005/pro-math-calculator/internal/server"
	"github.com/akashbangaru2005/pro-math-calculator/internal/store"
)

func main() {
	configPath := flag.String("config", "procalc.yaml", "path to YAML config")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dbPath := flag.String("db", "", "history database (overrides config)")
	openBrowser := flag.Bool("open", false, "open the health page in a browser once listening")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatalf("data dir: %v", err)
	}

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}
	defer st.Close()

	srv := server.New(calc.New(cfg.Limits()), st, server.Options{
		HistoryLimit: cfg.HistoryLimit,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("procalc server listening on %s (history: %s)", cfg.Server.Addr, cfg.DBPath)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	if *openBrowser {
		host := cfg.Server.Addr
		if strings.HasPrefix(host, ":") {
			host = "localhost" + host
		}
		if err := commands.RunOpen("http://" + host + "/health"); err != nil {
			log.Printf("open browser: %v", err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
