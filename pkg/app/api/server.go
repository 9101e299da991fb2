// Package api implements app.Runner for the custody server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/solfund/custody-middleware/pkg/app/http"
	"github.com/solfund/custody-middleware/pkg/config"
	donationservice "github.com/solfund/custody-middleware/pkg/donation/service"
	"github.com/solfund/custody-middleware/pkg/donationstore"
	"github.com/solfund/custody-middleware/pkg/ingest"
	"github.com/solfund/custody-middleware/pkg/keys"
	"github.com/solfund/custody-middleware/pkg/ledger"
	"github.com/solfund/custody-middleware/pkg/pgutil"
	"github.com/solfund/custody-middleware/pkg/poller"
	walletservice "github.com/solfund/custody-middleware/pkg/wallet/service"
	"github.com/solfund/custody-middleware/pkg/walletstore"
)

const defaultRequestTimeout = 60

// Server holds cfg to init the custody server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new custody server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("custody server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting custody server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() { _ = db.Close() }()

	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	masterKey, err := s.getMasterKey()
	if err != nil {
		return err
	}
	cipher := keys.NewMasterKeyCipher(masterKey)

	chain, err := ledger.NewClient(&cfg.Solana, logger)
	if err != nil {
		return fmt.Errorf("create solana client: %w", err)
	}
	logger.Info("Connected to Solana", zap.String("rpc_url", cfg.Solana.RPCURL))

	platformWallet, err := solana.PublicKeyFromBase58(cfg.Wallet.PlatformWallet)
	if err != nil {
		return fmt.Errorf("invalid platform wallet %q: %w", cfg.Wallet.PlatformWallet, err)
	}

	walletStore := walletstore.NewStore(db)
	donationStore := donationstore.NewStore(db)

	feePoller, err := poller.New(walletStore, chain, cipher, platformWallet, poller.Config{
		FeeRate:         cfg.Fees.Rate,
		MinFeeThreshold: cfg.Fees.MinFeeThreshold,
		Interval:        cfg.Fees.PollInterval,
		BatchSize:       cfg.Fees.BatchSize,
	}, logger)
	if err != nil {
		return fmt.Errorf("create balance poller: %w", err)
	}
	feePoller.Start()
	// Safety net; Stop is called explicitly after ServeAndWait returns.
	defer feePoller.Stop()

	ingester := ingest.New(walletStore, donationStore, chain, &cfg.Sync, logger)
	ingester.Start()
	defer ingester.Stop()

	walletSvc := walletservice.NewService(
		walletStore,
		chain,
		cipher,
		&cfg.Wallet,
		&cfg.Fees,
		logger,
	)

	router := s.setupRouter(walletservice.NewLog(walletSvc, logger), donationStore, ingester, logger)

	err = apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)

	// Stop background work before deferred DB closes kick in.
	ingester.Stop()
	feePoller.Stop()

	return err
}

func (s *Server) getMasterKey() ([]byte, error) {
	masterKeyStr := os.Getenv(s.cfg.Wallet.MasterKeyEnv)
	if masterKeyStr == "" {
		return nil, fmt.Errorf(
			"custody master key not set: env=%s (hint: openssl rand -base64 32)",
			s.cfg.Wallet.MasterKeyEnv,
		)
	}

	masterKey, err := keys.MasterKeyFromBase64(masterKeyStr)
	if err != nil {
		return nil, fmt.Errorf("invalid custody master key: %w", err)
	}
	return masterKey, nil
}

func (s *Server) setupRouter(
	walletSvc walletservice.Service,
	donations donationstore.Store,
	ingester *ingest.Ingester,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Second * defaultRequestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Campaign wallet endpoints
	walletservice.RegisterRoutes(r, walletSvc, logger)

	// Donation history endpoints
	donationservice.RegisterRoutes(r, donationservice.NewService(donations, logger), logger)

	// On-demand donation sync
	r.Post("/sync", s.handleSync(ingester, logger))

	return r
}

func (s *Server) handleSync(ingester *ingest.Ingester, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingested, err := ingester.RunSyncCycle(r.Context())
		if err != nil {
			logger.Error("On-demand sync failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"sync failed","code":502}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"ingested":%d}`, ingested)
	}
}
