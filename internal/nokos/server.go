package nokos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/handlers"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/middleware"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/go-chi/chi/v5"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
}

type Services struct {
	Catalog  handlers.CountriesGettingService
	Services handlers.ServicesGettingService
	Quoting  handlers.OrderQuotingService
	Commit   handlers.OrderCommittingService
	Orders   handlers.OrdersGettingService
	Order    handlers.OrderGettingService
	Cancel   handlers.OrderCancellingService
	Deposit  handlers.PaymentCreationService
	Status   handlers.PaymentStatusService
	Wallet   middleware.WalletInitializer
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func NewServer(cfg Config, services Services, logger *logging.ZapLogger) *Server {
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: createMux(services, logger),
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(services Services, logger *logging.ZapLogger) *chi.Mux {
	countriesHandler := handlers.NewCountriesGettingHandler(services.Catalog, logger)
	servicesHandler := handlers.NewServicesGettingHandler(services.Services, logger)
	quoteHandler := handlers.NewOrderQuotingHandler(services.Quoting, logger)
	commitHandler := handlers.NewOrderCommittingHandler(services.Commit, logger)
	ordersHandler := handlers.NewOrdersGettingHandler(services.Orders, logger)
	orderHandler := handlers.NewOrderGettingHandler(services.Order, logger)
	cancelHandler := handlers.NewOrderCancellingHandler(services.Cancel, logger)
	depositHandler := handlers.NewPaymentCreationHandler(services.Deposit, logger)
	depositStatusHandler := handlers.NewPaymentStatusHandler(services.Status, logger)

	loggerContext := middleware.NewLoggerContext()
	panicRecover := middleware.NewPanicRecover(logger)
	userContext := middleware.NewUserContext(services.Wallet, logger)

	router := chi.NewRouter()
	router.Use(loggerContext.CreateHandler)
	router.Use(panicRecover.CreateHandler)
	router.Use(userContext.CreateHandler)

	router.Route("/api", func(router chi.Router) {
		router.Get("/countries", countriesHandler.ServeHTTP)
		router.Get("/services", servicesHandler.ServeHTTP)
		router.Post("/order/quote", quoteHandler.ServeHTTP)
		router.Post("/order/commit", commitHandler.ServeHTTP)
		router.Get("/orders", ordersHandler.ServeHTTP)
		router.Get("/order/{id}", orderHandler.ServeHTTP)
		router.Post("/order/{id}/cancel", cancelHandler.ServeHTTP)
		router.Post("/payment/create", depositHandler.ServeHTTP)
		router.Get("/payment/status", depositStatusHandler.ServeHTTP)
	})

	return router
}
