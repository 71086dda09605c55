package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/RyuuXiaoo/nokoslagii/cmd/nokoslagi/config"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/atlantic"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data/database"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data/dbrepository"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data/memrepository"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/jasaotp"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/otppoller"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/service"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/RyuuXiaoo/nokoslagii/pkg/pgxstorage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewZapLogger(zapcore.DebugLevel)
	if err != nil {
		log.Fatal(err)
	}

	var (
		walletRepository   service.WalletRepository
		orderRepository    service.OrderRepository
		transactionManager service.TransactionManager
	)
	if cfg.DB.ConnectionString == "" {
		repository := memrepository.New()
		walletRepository = repository
		orderRepository = repository
		transactionManager = memrepository.NewTransactionsManager()
	} else {
		dbFactory := database.NewPgxDatabaseFactory(cfg.DB)
		storage, err := pgxstorage.New(dbFactory)
		if err != nil {
			log.Fatal(err)
		}
		defer storage.Close()
		repository := dbrepository.New(storage, logger)
		walletRepository = repository
		orderRepository = repository
		transactionManager = pgxstorage.NewTransactionsManager(storage)
	}

	otpClient := jasaotp.NewClient(cfg.JasaOTP, logger)
	depositClient := atlantic.NewClient(cfg.Atlantic, logger)

	poller := otppoller.NewPoller(cfg.Poller, otpClient, logger)
	registry := otppoller.NewRegistry(poller)

	walletService := service.NewWallet(transactionManager, walletRepository, logger)
	ordersService := service.NewOrders(
		transactionManager,
		orderRepository,
		walletService,
		otpClient,
		registry,
		cfg.Margin,
		logger,
	)
	catalogService := service.NewCatalog(otpClient)
	paymentsService := service.NewPayments(depositClient, logger)

	server := nokos.NewServer(cfg.Server, nokos.Services{
		Catalog:  catalogService,
		Services: catalogService,
		Quoting:  ordersService,
		Commit:   ordersService,
		Orders:   ordersService,
		Order:    ordersService,
		Cancel:   ordersService,
		Deposit:  paymentsService,
		Status:   paymentsService,
		Wallet:   walletService,
	}, logger)

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGABRT,
	)
	defer cancelCtx()

	if err := run(rootCtx, cfg, server, registry, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
	} else {
		logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	}
}

func run(
	rootCtx context.Context,
	cfg *config.Config,
	server *nokos.Server,
	registry *otppoller.Registry,
	logger *logging.ZapLogger,
) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		registry.Stop()
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occured: %w", err)
	}

	return nil
}
