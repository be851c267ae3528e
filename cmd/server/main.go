package main

import (
	"log"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dashboard/internal/api"
	"dashboard/internal/config"
	"dashboard/internal/engine"
)

type options struct {
	Addr    string `long:"addr" description:"Listen address (overrides DASHBOARD_ADDR)"`
	Data    string `long:"data" description:"Path to the sales dataset CSV (overrides DASHBOARD_DATA)"`
	EnvFile string `long:"env-file" description:"Path to an env file"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	cfg := config.Load(opts.EnvFile)
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}
	if opts.Data != "" {
		cfg.DataPath = opts.Data
	}

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// API goes live immediately; endpoints answer 503 until the dataset lands.
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	go func() {
		t0 := time.Now()
		log.Printf("loading dataset from %s", cfg.DataPath)

		records, cols, err := engine.LoadRecords(cfg.DataPath)
		if err != nil {
			log.Fatalf("dataset load failed: %v", err)
		}

		h.SetStore(engine.NewRecordStore(records, cols))
		log.Printf("dataset ready: %d rows in %v", len(records), time.Since(t0))
	}()

	log.Printf("server listening on %s (dataset loading in background)", cfg.Addr)
	e.Logger.Fatal(e.Start(cfg.Addr))
}
