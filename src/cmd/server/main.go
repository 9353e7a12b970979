package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/events"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/controller"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/middleware"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/router"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/implementations"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/memory"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/config"
	"github.com/api-sage/money-transfer-service/src/internal/logger"
	"github.com/api-sage/money-transfer-service/src/internal/telemetry"
	"github.com/api-sage/money-transfer-service/src/internal/usecase/services"
	"golang.org/x/sync/errgroup"
)

type stores struct {
	ledger       repo_interfaces.LedgerStore
	accounts     repo_interfaces.AccountRepository
	transactions repo_interfaces.TransactionRepository
	close        func() error
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	logger.Info("server stopped", nil)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error("tracer shutdown failed", err, nil)
		}
	}()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Error("store close failed", err, nil)
		}
	}()

	var publisher services.TransactionPublisher = events.NoopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, cfg.ServiceName)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	handler := router.New(
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKeyHash),
		controller.NewHealthController(),
		controller.NewAccountController(services.NewAccountService(st.accounts)),
		controller.NewTransferController(
			services.NewTransferService(st.ledger, publisher),
			services.NewTransactionService(st.transactions),
		),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", logger.Fields{
			"addr":        cfg.HTTPAddr,
			"storeDriver": cfg.StoreDriver,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("http server shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	// Deferred closers run after the server has drained.
	return g.Wait()
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		ledger := memory.NewLedgerStore()
		return stores{
			ledger:       ledger,
			accounts:     memory.NewAccountRepository(ledger),
			transactions: memory.NewTransactionRepository(ledger),
			close:        func() error { return nil },
		}, nil
	}

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := implementations.Open(startupCtx, cfg.DatabaseDSN)
	if err != nil {
		return stores{}, err
	}

	if err := implementations.RunMigrations(startupCtx, db, cfg.MigrationsDir); err != nil {
		_ = db.Close()
		return stores{}, err
	}

	return postgresStores(db), nil
}

func postgresStores(db *sql.DB) stores {
	return stores{
		ledger:       implementations.NewLedgerStore(db),
		accounts:     implementations.NewAccountRepository(db),
		transactions: implementations.NewTransactionRepository(db),
		close:        db.Close,
	}
}
