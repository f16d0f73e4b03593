package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/go-redis/redis/v8"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/alexanderramin/glidepath/internal/cli"
	"github.com/alexanderramin/glidepath/internal/config"
	"github.com/alexanderramin/glidepath/internal/db"
	"github.com/alexanderramin/glidepath/internal/logging"
	"github.com/alexanderramin/glidepath/internal/metrics"
	"github.com/alexanderramin/glidepath/internal/repository"
	"github.com/alexanderramin/glidepath/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	// --config has to be known before the command tree exists.
	var configPath string
	pre := pflag.NewFlagSet("glidepath", pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	pre.SetOutput(io.Discard)
	cli.AddGlobalFlags(pre, &configPath)
	_ = pre.Parse(os.Args[1:])

	cfg, err := config.Load(configPath, ".env", filepath.Join(config.DefaultDataDir(), ".env"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logCloser := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})
	defer func() { err = multierr.Append(err, logCloser.Close()) }()

	store, storeCloser, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, storeCloser.Close()) }()

	reg := prometheus.NewRegistry()
	defer func() {
		if werr := metrics.WriteTextfile(reg, cfg.MetricsFile); werr != nil {
			err = multierr.Append(err, fmt.Errorf("writing metrics: %w", werr))
		}
	}()

	// The metrics observer reads the score back from the controller, which
	// is only assigned once the controller exists.
	var ctrl *service.PlanController
	score := func() int { return ctrl.Summary().MotivationScore }
	observer := service.CombineObservers(
		service.NewLogUseCaseObserver(logger),
		metrics.NewUseCaseObserver(metrics.NewManager(metrics.Namespace, metrics.Subsystem, reg), score),
	)
	ctrl = service.NewPlanController(store, cfg.User, service.WithObserver(observer))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	app := &cli.App{
		Plan:    ctrl,
		Backups: service.NewBackupService(ctrl, cfg.BackupDir(), observer),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.WithFields(logrus.Fields{"store": cfg.Store, "user": cfg.User}).Debug("glidepath starting")
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func openStore(cfg config.Config, logger *logrus.Logger) (repository.SnapshotStore, io.Closer, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		return repository.NewRedisSnapshotStore(client, ""), client, nil
	case config.StoreMemory:
		logger.Warn("memory store selected, nothing will be kept after exit")
		return repository.NewMemorySnapshotStore(), noopCloser{}, nil
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteSnapshotStore(database), database, nil
	}
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
