package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"golang.org/x/sync/errgroup"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/config"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/handler"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/session"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/cashflower/shared/auth"
	"github.com/vasapolrittideah/cashflower/shared/discovery"
	"github.com/vasapolrittideah/cashflower/shared/httpx"
	"github.com/vasapolrittideah/cashflower/shared/logger"
	"github.com/vasapolrittideah/cashflower/shared/mailer"
	"github.com/vasapolrittideah/cashflower/shared/security"
	"github.com/vasapolrittideah/cashflower/shared/utilities"
	"github.com/vasapolrittideah/cashflower/shared/validation"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log, cfg.Discovery.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("account service stopped with error")
	}
}

func run(ctx context.Context, cfg *config.AccountServiceConfig, log *zerolog.Logger) error {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, log, db)
	profileRepo := repository.NewProfileMongoRepository(ctx, log, db)
	goalRepo := repository.NewGoalMongoRepository(ctx, log, db)
	transactionRepo := repository.NewTransactionMongoRepository(ctx, log, db)
	tokenRepo := repository.NewPasswordResetTokenMongoRepository(ctx, log, db)

	hasher := security.NewArgon2Hasher(security.HashParams{
		TimeCost:    cfg.Argon2.TimeCost,
		MemoryCost:  cfg.Argon2.MemoryCost,
		Parallelism: cfg.Argon2.Parallelism,
	})
	tokens := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer, cfg.Token.Secret)
	mail := mailer.NewMailer(cfg.Mailer, log)

	validator, err := validation.New()
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	authUsecase := usecase.NewAuthUsecase(userRepo, profileRepo, hasher, tokens, cfg.Token.SessionTokenExpiresIn, log)

	router := handler.NewRouter(handler.Dependencies{
		Auth: authUsecase,
		PasswordReset: usecase.NewPasswordResetUsecase(userRepo, tokenRepo, hasher, tokens, mail,
			usecase.PasswordResetConfig{
				FrontendURL: cfg.FrontendURL,
				TokenTTL:    cfg.Token.PasswordResetTokenExpiresIn,
				SingleUse:   cfg.Token.PasswordResetSingleUse,
			}, log),
		Account:     usecase.NewAccountUsecase(userRepo, profileRepo, goalRepo, transactionRepo, tokenRepo, log),
		Profile:     usecase.NewProfileUsecase(userRepo, profileRepo),
		Goal:        usecase.NewGoalUsecase(userRepo, goalRepo),
		Transaction: usecase.NewTransactionUsecase(userRepo, transactionRepo),
		Contact:     usecase.NewContactUsecase(mail, cfg.ContactInbox),
		Sessions: session.NewManager(session.Config{
			CookieName: cfg.Session.CookieName,
			CookieTTL:  cfg.Session.CookieExpiresIn,
			Secure:     cfg.Session.CookieSecure,
		}),
		Validator:      validator,
		Logger:         log,
		Metrics:        httpx.NewMetrics(registry),
		Gatherer:       registry,
		EnforceSession: cfg.Session.Enforce,
	})

	httpServer := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer, healthServer := utilities.NewHealthServer()
	grpcListener, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(cfg.HealthGRPCPort)))
	if err != nil {
		return fmt.Errorf("failed to listen on health port: %w", err)
	}

	var registryClient *discovery.Registry
	if cfg.Discovery.Enabled() {
		registryClient, err = discovery.NewConsulRegistry(cfg.Discovery, log)
		if err != nil {
			return err
		}
		if err := registryClient.Register(
			cfg.Discovery.ServiceName,
			cfg.Discovery.ServiceHost,
			cfg.Port,
			cfg.HealthGRPCPort,
		); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.Port).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info().Int("port", cfg.HealthGRPCPort).Msg("grpc health server listening")
		if err := grpcServer.Serve(grpcListener); err != nil {
			return fmt.Errorf("grpc health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down account service")

		if registryClient != nil {
			if err := registryClient.Deregister(); err != nil {
				log.Error().Err(err).Msg("failed to deregister from consul")
			}
		}

		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shut down http server")
		}

		grpcServer.GracefulStop()
		return nil
	})

	return g.Wait()
}
