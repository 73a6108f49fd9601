package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/imposera/remora-tracker/internal/bus"
	"github.com/imposera/remora-tracker/internal/collector"
	"github.com/imposera/remora-tracker/internal/config"
	"github.com/imposera/remora-tracker/internal/httpserver"
	"github.com/imposera/remora-tracker/internal/model"
	"github.com/imposera/remora-tracker/internal/recorder"
	"github.com/imposera/remora-tracker/internal/tracker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] remora-tracker starting...")

	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	inst := model.Instrument{
		Label:   cfg.Instrument.Label,
		Symbol:  cfg.Instrument.Symbol,
		LongKO:  cfg.Instrument.LongKO,
		ShortKO: cfg.Instrument.ShortKO,
		Gearing: cfg.Instrument.Gearing,
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Provider == "mock" {
		fetcher = &collector.MockFetcher{Price: 65.0}
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, inst.Symbol, cfg.DataSource.HistoryRange, !cfg.DataSource.DisableLiveQuote)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	b := bus.NewBus()
	engine := tracker.NewEngine(col, inst, b, rec, cfg.Refresh.DefaultSeconds, cfg.Refresh.MinSeconds, cfg.Refresh.MaxSeconds, nil)
	if err := engine.Start(); err != nil {
		log.Fatalf("[FATAL] start refresh engine: %v", err)
	}
	defer engine.Stop()

	// First page load should have data without waiting a full period.
	go engine.Refresh()

	wsHandler := httpserver.NewSnapshotWS(b, engine, "*")
	router := httpserver.NewRouter(httpserver.RouterDeps{Engine: engine, WSHandler: wsHandler})
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	go func() {
		log.Printf("[INFO] dashboard listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] remora-tracker stopped")
}
