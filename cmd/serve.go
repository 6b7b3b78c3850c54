// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/canonical/academy-service/internal/cache"
	"github.com/canonical/academy-service/internal/config"
	"github.com/canonical/academy-service/internal/db"
	"github.com/canonical/academy-service/internal/identity"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/monitoring/prometheus"
	"github.com/canonical/academy-service/internal/scope"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/pkg/authentication"
	"github.com/canonical/academy-service/pkg/tenant"
	"github.com/canonical/academy-service/pkg/web"
)

const healthPrefix = "/grpc.health.v1.Health/"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// exceptHealth applies i to every method but the health checks, which must stay
// reachable by health checkers that carry no credentials.
func exceptHealth(i grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if strings.HasPrefix(info.FullMethod, healthPrefix) {
			return handler(ctx, req)
		}
		return i(ctx, req, info, handler)
	}
}

func tenantCache(ctx context.Context, specs *config.CacheSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (cache.TenantCacheInterface, func(), error) {
	if !specs.TenantCacheEnabled {
		logger.Info("Tenant cache is disabled")
		return cache.NewNoopTenantCache(), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, specs.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Infof("Tenant cache is enabled, ttl %s", specs.TenantCacheTTL)
	monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, 1)

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Errorf("failed to close redis client: %v", err)
		}
	}

	return cache.NewTenantCache(client, specs.TenantCacheTTL, tracer, monitor, logger), closeFn, nil
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("academy-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, specs.TracingSampleRatio, logger))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tracer.Shutdown(ctx); err != nil {
			logger.Errorf("failed to flush traces: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	if specs.TenantStrictScoping {
		logger.Info("Strict tenant scoping is enabled")
	}

	interceptor := scope.NewInterceptor(specs.TenantStrictScoping, tracer, monitor, logger)
	s := storage.NewStorage(dbClient, interceptor, tracer, monitor, logger)

	tenants, closeCache, err := tenantCache(ctx, &specs.CacheSpec, tracer, monitor, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	tenantMiddleware := tenant.NewMiddleware(
		tenant.NewResolver(s, tenants, tracer, monitor, logger),
		specs.TenantHeader,
		tracer,
		monitor,
		logger,
	)

	var (
		httpAuthentication func(http.Handler) http.Handler
		grpcAuthentication grpc.UnaryServerInterceptor
	)

	if specs.AuthenticationEnabled {
		verifier, err := authentication.NewVerifier(
			ctx,
			authentication.Config{
				Issuer:          specs.AuthenticationIssuer,
				JWKSURL:         specs.AuthenticationJWKSURL,
				AllowedSubjects: specs.AuthenticationAllowedSubs,
				RequiredScope:   specs.AuthenticationRequiredScope,
			},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to set up authentication: %w", err)
		}

		authn := authentication.NewMiddleware(verifier, tracer, monitor, logger)
		httpAuthentication = authn.Optional()
		grpcAuthentication = authn.GRPCInterceptor
		logger.Info("Authentication is enabled")
	} else {
		// principals are asserted by a trusted gateway
		identityMiddleware := identity.NewMiddleware(tracer, monitor, logger)
		httpAuthentication = identityMiddleware.HTTPMiddleware
		grpcAuthentication = identityMiddleware.GRPCInterceptor
		logger.Info("Authentication is disabled, trusting gateway identity headers")
	}

	healthServer := health.NewServer()

	grpcServer := grpc.NewServer(
		tracing.NewMiddleware(monitor, logger).GRPCServerOption(),
		grpc.ChainUnaryInterceptor(
			tenantMiddleware.GRPCInterceptor,
			exceptHealth(grpcAuthentication),
		),
	)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	router := web.NewRouter(
		web.Config{
			Tenants:            tenantMiddleware,
			Authentication:     httpAuthentication,
			TenantHeader:       specs.TenantHeader,
			CORSAllowedOrigins: specs.CORSAllowedOrigins,

			RegistrationWebhookToken: specs.RegistrationWebhookToken,
		},
		s,
		tenants,
		dbClient,
		tracer,
		monitor,
		logger,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%v", specs.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on grpc port: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("Starting gRPC server on port %v", specs.GRPCPort)
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Infof("Starting HTTP server on port %v", specs.Port)
		logger.Security().SystemStartup()

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		// Create a deadline to wait for.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		logger.Security().SystemShutdown()
		healthServer.Shutdown()
		grpcServer.GracefulStop()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
