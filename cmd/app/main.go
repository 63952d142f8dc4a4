package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipquote/cmd"
	"shipquote/internal/adapters/in/chat"
	"shipquote/internal/platform/db"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("No .env file loaded, using the process environment", "error", err)
	}

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := cmd.NewLogger(os.Stdout, configs.LogLevel, configs.LogFormat)
	if err != nil {
		slog.Error("Invalid logger configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger); err != nil {
		logger.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	gormDB, err := openDB(ctx, configs, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		return err
	}

	dispatcher, err := app.CreateDispatcher()
	if err != nil {
		return err
	}

	// Handlers outlive the signal so queued updates still get an answer.
	mailbox := chat.NewMailbox(context.WithoutCancel(ctx), dispatcher.Handle, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		mailbox.Close()
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())
	app.CreateServer(mailbox).Register(e)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("HTTP server started", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
		defer cancel()

		err := e.Shutdown(shutdownCtx)
		mailbox.Close()
		logger.Info("HTTP server stopped")
		return err
	})

	return g.Wait()
}

func openDB(ctx context.Context, configs cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	if configs.DBDriver == cmd.DBDriverSQLite {
		return db.OpenSQLite(configs.SQLitePath, logger)
	}
	return db.OpenPostgres(ctx, configs.Postgres().URL(), logger)
}
