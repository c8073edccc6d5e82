package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firewatch/internal/handlers"
	"firewatch/internal/logger"
	"firewatch/internal/metrics"
	mqttbridge "firewatch/internal/mqtt"
	"firewatch/internal/repository"
	"firewatch/internal/server"
	"firewatch/internal/service"
	"firewatch/internal/store"

	"github.com/spf13/viper"
)

// defaultRoster pre-registers the building's rooms so the dashboard and the
// occupancy table know them before the first reading arrives.
var defaultRoster = []string{"B001", "R101", "R103", "R202", "R203", "R207", "R301"}

const defaultReplicaInterval = 3 * time.Second

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	roster := viper.GetStringSlice("rooms")
	if len(roster) == 0 {
		roster = defaultRoster
	}

	// open DB (schema + roster seed)
	db, err := openDB(log, roster)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// in-memory room status store, seeded with the roster
	st := store.New(roster, viper.GetInt("buffer.capacity"))
	metrics.Init(func() float64 { return float64(st.FireRoomCount()) })

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, st, log, serviceConfig())
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// staleness monitor ticks at half the stale timeout
	staleTimeout := durationSetting("timeouts.stale_s", service.DefaultStaleTimeout)
	go services.Monitor.Run(ctx, staleTimeout/2)

	// replicate db files for the downstream consumer
	go services.Replicator.Run(ctx, durationSetting("replication.interval_s", defaultReplicaInterval))

	// optional MQTT ingest bridge
	if broker := viper.GetString("mqtt.broker"); broker != "" {
		bridge, err := mqttbridge.NewBridge(broker, viper.GetString("mqtt.client_id"), viper.GetString("mqtt.topic"), services.Ingest, log)
		if err != nil {
			log.Errorw("mqtt bridge unavailable; continuing with HTTP ingestion only", "err", err)
		} else {
			defer bridge.Close()
			if err := bridge.Subscribe(); err != nil {
				log.Errorw("mqtt subscribe failed", "err", err)
			}
		}
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// serviceConfig assembles the service tuning constants from configuration.
func serviceConfig() service.Config {
	cfg := service.Config{
		TempThresholdC: viper.GetFloat64("thresholds.temperature_c"),
		SmokeThreshold: viper.GetInt("thresholds.smoke"),
		StaleTimeout:   durationSetting("timeouts.stale_s", service.DefaultStaleTimeout),
		MissingTimeout: durationSetting("timeouts.missing_s", service.DefaultMissingTimeout),
		WebhookURL:     viper.GetString("webhook.url"),
		WebhookTimeout: durationSetting("webhook.timeout_s", 0),
		DetectorCmd:    viper.GetStringSlice("detector.command"),
		ReplicaDir:     viper.GetString("replication.dir"),
		SigningKey:     viper.GetString("auth.signing_key"),
	}
	if files, ok := viper.Get("replication.files").([]any); ok {
		for _, f := range files {
			m, ok := f.(map[string]any)
			if !ok {
				continue
			}
			src, _ := m["src"].(string)
			dest, _ := m["dest"].(string)
			if src != "" && dest != "" {
				cfg.ReplicaFiles = append(cfg.ReplicaFiles, service.ReplicaFile{Src: src, Dest: dest})
			}
		}
	}
	return cfg
}

// durationSetting reads a whole-seconds config value with a fallback.
func durationSetting(key string, fallback time.Duration) time.Duration {
	if s := viper.GetInt(key); s > 0 {
		return time.Duration(s) * time.Second
	}
	return fallback
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger, roster []string) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "fire_incident.db")
		dbPath = "fire_incident.db"
	}
	return repository.InitDB(dbPath, roster)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
