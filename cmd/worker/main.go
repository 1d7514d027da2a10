package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"retailos/internal/app/infra/persistence/mysql"
	appredis "retailos/internal/app/infra/persistence/redis"
	"retailos/internal/business"
	"retailos/internal/domains"
	"retailos/internal/framework"
	"retailos/internal/worker"
	"retailos/pkg/config"
	infmysql "retailos/pkg/infra/mysql"
	infredis "retailos/pkg/infra/redis"
	"retailos/pkg/lmstfy"
	"retailos/pkg/logger"
)

var configPath = flag.String("config", "./config/worker.yaml", "config file path")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateWorker(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	zl, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := mysql.Open(cfg.MySQL.DSN, cfg.MySQL.AutoMigrate)
	if err != nil {
		log.Fatalf("Failed to open mysql: %v", err)
	}
	defer func() { _ = mysql.Close(db) }()

	var notifier business.Notifier
	if cfg.Redis.Addr != "" {
		rdb, err := appredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		notifier = infredis.NewPubSub(rdb)
	}

	restock := business.NewRestockService(infmysql.NewRestockAlertDAO(db), notifier, zl)
	queue := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)

	mgr, err := worker.NewManagerInstance(
		cfg,
		framework.NewLmstfySource(queue),
		domains.GetProcess(zl, domains.NewHandlerMap(restock)),
		zl,
	)
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	go func() {
		if err := mgr.Start(); err != nil {
			zl.Error("Manager stopped", "error", err)
		}
	}()
	zl.Info("Worker started", "app", cfg.App.Name, "workers", len(cfg.Workers))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	zl.Info("Received signal, shutting down", "signal", sig.String())
	mgr.Shutdown()
	zl.Info("Worker exited gracefully")
}
