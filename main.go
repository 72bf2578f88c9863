package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	ginlogrus "github.com/toorop/gin-logrus"

	"chargewatch/config"
	db2 "chargewatch/db"
	"chargewatch/exporter"
	"chargewatch/external"
	"chargewatch/ingest"
	"chargewatch/oicp"
	"chargewatch/stats_collector"
)

var db *sqlx.DB
var dbDetails db2.DbDetails
var statsCollector stats_collector.StatsCollector

func main() {
	configPath := os.Getenv("CHARGEWATCH_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		panic(err)
	}

	logLevel := log.InfoLevel
	if cfg.Logging.Debug {
		logLevel = log.DebugLevel
	}
	SetupLogger(
		logLevel,
		cfg.Logging.SaveLogs,
		cfg.Logging.MaxSize,
		cfg.Logging.MaxAge,
		cfg.Logging.MaxBackups,
		cfg.Logging.Compress,
	)

	// Both Sentry & Pyroscope are optional and off by default. Read more:
	// https://docs.sentry.io/platforms/go
	// https://pyroscope.io/docs/golang
	external.InitSentry(cfg)
	external.InitPyroscope(cfg)

	log.Infof("Chargewatch starting")

	// Capture connection properties.
	mysqlConfig := mysql.Config{
		User:                 cfg.Database.User,
		Passwd:               cfg.Database.Password,
		Net:                  "tcp",
		Addr:                 cfg.Database.Addr,
		DBName:               cfg.Database.Db,
		AllowNativePasswords: true,
		ParseTime:            true,
	}

	dbConnectionString := mysqlConfig.FormatDSN()
	driver := "mysql"

	log.Infof("Starting migration")

	m, err := migrate.New(
		"file://sql",
		driver+"://"+dbConnectionString+"&multiStatements=true")
	if err != nil {
		log.Fatal(err)
		return
	}
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
		return
	}

	log.Infof("Opening database for processing, max pool = %d", cfg.Database.MaxPool)

	db, err = sqlx.Open(driver, dbConnectionString)
	if err != nil {
		log.Fatal(err)
		return
	}

	db.SetConnMaxLifetime(time.Minute * 3) // Recommended by go mysql driver
	db.SetMaxOpenConns(cfg.Database.MaxPool)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(time.Minute)

	pingErr := db.Ping()
	if pingErr != nil {
		log.Fatal(pingErr)
		return
	}
	log.Infoln("Connected to database")

	dbDetails = db2.DbDetails{
		GeneralDb: db,
	}

	mode := "serve"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "serve":
		runServe(cfg)
	case "load":
		runLoad(cfg)
	case "export":
		runExport()
	default:
		log.Fatalf("unknown mode %q (expected serve, load or export)", mode)
	}
}

// runLoad is the one-shot metadata bootstrap. The emptiness check lives here,
// not in the loader: a populated table means the bootstrap already happened
// and the run is a no-op.
func runLoad(cfg *config.Config) {
	ctx := context.Background()

	count, err := db2.CountStations(ctx, dbDetails)
	if err != nil {
		log.Fatal(err)
		return
	}
	if count > 0 {
		log.Infof("charging_stations already has %d rows, skipping initial load", count)
		return
	}

	loader := ingest.NewBulkLoader(oicp.NewClient(cfg.Feeds), dbDetails)
	if err := loader.Load(ctx); err != nil {
		log.Fatalf("Initial metadata load failed: %s", err)
	}
}

func runExport() {
	if len(os.Args) < 4 {
		log.Fatalf("usage: chargewatch export <table> <output.csv>")
		return
	}
	table, outputPath := os.Args[2], os.Args[3]

	if err := exporter.ExportTable(context.Background(), dbDetails, table, outputPath); err != nil {
		log.Fatalf("Export failed: %s", err)
	}
}

func runServe(cfg *config.Config) {
	var wg sync.WaitGroup
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	wg.Add(1)
	go func() {
		defer wg.Done()
		watchForShutdown(ctx, cancelFn)
	}()

	client := oicp.NewClient(cfg.Feeds)

	count, err := db2.CountStations(ctx, dbDetails)
	if err != nil {
		log.Fatal(err)
		return
	}
	if count == 0 {
		loader := ingest.NewBulkLoader(client, dbDetails)
		if err := loader.Load(ctx); err != nil {
			log.Fatalf("Initial metadata load failed: %s", err)
			return
		}
	} else {
		log.Infof("charging_stations already has %d rows, skipping initial load", count)
	}

	StartDbUsageStatsLogger(db)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// choose the statsCollector we will use.
	statsCollector = stats_collector.GetStatsCollector(cfg, r)
	db2.SetStatsCollector(statsCollector)
	oicp.SetStatsCollector(statsCollector)
	ingest.SetStatsCollector(statsCollector)

	if cfg.Logging.Debug {
		r.Use(ginlogrus.Logger(log.StandardLogger()))
	} else {
		r.Use(gin.Recovery())
	}
	r.GET("/health", GetHealth)

	apiGroup := r.Group("/api")
	apiGroup.GET("/stations/:evse_id", GetStation)
	apiGroup.GET("/stations/:evse_id/history", GetStationHistory)
	apiGroup.GET("/stats", GetStats)
	apiGroup.POST("/export", PostExport)

	poller := ingest.NewStatusPoller(client, dbDetails)
	scheduler := ingest.NewScheduler(cfg.Poller)

	// the scheduler finishing its run budget shuts the whole process down
	wg.Add(1)
	go func() {
		defer cancelFn()
		defer wg.Done()

		scheduler.Run(ctx, poller.RunCycle)
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	wg.Add(1)
	go func() {
		defer cancelFn()
		defer wg.Done()

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Failed to listen and start http server: %s", err)
		}
	}()

	log.Infoln("Chargewatch started")

	// wait for shutdown to be signaled in some way. This can be the scheduler
	// exhausting its run budget, a failure to start the http server, and/or
	// watchForShutdown() saying it is time to shutdown. (watchForShutdown() on unix
	// waits for a SIGINT or SIGTERM)
	<-ctx.Done()

	log.Info("Starting shutdown...")

	// So now we attempt to shutdown the http server, telling it to wait for open requests to
	// finish for 5 seconds before just pulling the plug.
	shutdownCtx, shutdownCancelFn := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancelFn()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		if err == context.DeadlineExceeded {
			log.Warn("Graceful shutdown timed out, exiting.")
		} else {
			log.Errorf("Error during http server shutdown: %s", err)
		}
	}

	// wait for other started goroutines to cleanup and exit before we leave.
	log.Info("http server is shutdown, waiting for other go routines to exit...")
	wg.Wait()

	log.Info("Chargewatch exiting!")
}
