package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tcg_monitor/config"
	"tcg_monitor/httputil"
	"tcg_monitor/logging"
	"tcg_monitor/monitor"
	"tcg_monitor/notify"
	"tcg_monitor/scheduler"
	"tcg_monitor/scraper"
	"tcg_monitor/storage"
)

var (
	configPath = flag.String("config", config.DefaultPath, "Path to config file")
	checkNow   = flag.Bool("check", false, "Run one monitoring cycle and exit")
	graphsNow  = flag.Bool("graphs", false, "Capture price graphs once and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := logging.Setup(cfg.Storage.LogFile)
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting tcg_monitor...")
	log.Printf("Monitoring %d pages:", len(cfg.Pages))
	for _, page := range cfg.Pages {
		log.Printf("  - %s", notify.CardNameFromURL(page))
	}

	store := storage.NewJSONStore(cfg.Storage.DataFile)
	log.Printf("Data file: %s", cfg.Storage.DataFile)

	runs, err := storage.NewRunStore(cfg.Storage.RunsDB)
	if err != nil {
		log.Fatalf("Failed to open run history database: %v", err)
	}
	defer runs.Close()
	log.Printf("Run history database: %s", cfg.Storage.RunsDB)

	clients := httputil.NewClients()
	notifier := notify.NewDiscordNotifier(clients, cfg.Alerts.DiscordWebhookURL)

	session := scraper.NewBrowserSession(cfg.Monitoring.Headless)
	defer session.Close()

	mon := monitor.New(cfg, session, store, runs, notifier)
	if err := mon.LoadState(); err != nil {
		log.Fatalf("Failed to load previous records: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	graphs := monitor.NewGraphJob(cfg, session, notifier)

	if *graphsNow {
		log.Println("Running graph capture...")
		graphs.Run(ctx)
		log.Println("Graph capture complete!")
		return
	}

	if *checkNow {
		log.Println("Running monitoring cycle...")
		if err := mon.RunCycle(ctx); err != nil {
			log.Fatalf("Cycle failed: %v", err)
		}
		log.Println("Cycle complete!")
		return
	}

	// Daemon mode
	mon.Announce()

	log.Println("Running initial cycle...")
	if err := mon.RunCycle(ctx); err != nil {
		log.Printf("Initial cycle error: %v", err)
	}

	sched := scheduler.New(cfg, mon, graphs)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	log.Println("Monitor running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	cancel()
	sched.Stop()
	log.Println("Goodbye!")
}
