// Command server runs the voter identity gateway: login and signup flows,
// verification codes, federated callbacks and token issuance over HTTP.
package main

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"votegate/internal/comm"
	"votegate/internal/ephemeral"
	"votegate/internal/linkbridge"
	"votegate/internal/platform/config"
	"votegate/internal/platform/httpserver"
	"votegate/internal/platform/logger"
	"votegate/internal/platform/metrics"
	platformredis "votegate/internal/platform/redis"
	"votegate/internal/token"
	httptransport "votegate/internal/transport/http"
	"votegate/internal/verifycode"
	"votegate/internal/voter/service"
	"votegate/internal/voter/store"
	"votegate/pkg/platform/audit"
	auditpublisher "votegate/pkg/platform/audit/publisher"
	auditmemory "votegate/pkg/platform/audit/store/memory"
	auditpostgres "votegate/pkg/platform/audit/store/postgres"
)

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Ephemeral store: redis when configured, in-process otherwise.
	var ephemeralStore ephemeral.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		ephemeralStore = ephemeral.NewRedisStore(redisClient.Client)
		log.Info("ephemeral store: redis")
	} else {
		ephemeralStore = ephemeral.NewInMemoryStore()
		log.Warn("ephemeral store: in-memory, codes and sessions die with the process")
	}

	// Voter records: postgres when configured, in-process otherwise.
	var voterStore store.VoterStore
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		pgStore := store.NewPostgres(pool)
		if err := pgStore.Migrate(ctx); err != nil {
			return err
		}
		voterStore = pgStore
		log.Info("voter store: postgres")
	} else {
		voterStore = store.NewInMemory()
		log.Warn("voter store: in-memory, records die with the process")
	}

	// Activity log sinks.
	sinks := []audit.Sink{auditmemory.New()}
	if cfg.Postgres.URL != "" {
		auditStore, err := auditpostgres.Open(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer auditStore.Close()
		sinks = append(sinks, auditStore)
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := auditpublisher.NewKafka(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
		log.Info("activity log: kafka publisher enabled", "topic", cfg.Kafka.Topic)
	}
	recorder := audit.NewRecorder(sinks, audit.WithLogger(log))

	// Token signing key.
	var signingKey *ecdsa.PrivateKey
	if cfg.SigningKeyPEM != "" {
		signingKey, err = token.ParseKeyPEM([]byte(cfg.SigningKeyPEM))
		if err != nil {
			return err
		}
	} else {
		signingKey, err = token.GenerateKey()
		if err != nil {
			return err
		}
		log.Warn("no signing key configured, generated an ephemeral one")
	}

	issuer, err := token.New(signingKey, cfg.ServiceTag, cfg.CampaignStart, cfg.TokenTTL,
		token.WithMetrics(m))
	if err != nil {
		return err
	}

	codes, err := verifycode.New(ephemeralStore, comm.NewLogSender(log),
		verifycode.WithLogger(log),
		verifycode.WithRecorder(recorder),
		verifycode.WithMetrics(m))
	if err != nil {
		return err
	}

	bridge, err := linkbridge.New(ephemeralStore, linkbridge.WithLogger(log))
	if err != nil {
		return err
	}

	voters, err := service.New(voterStore, codes, bridge, issuer, cfg.VoteYear,
		service.WithLogger(log),
		service.WithRecorder(recorder),
		service.WithMetrics(m))
	if err != nil {
		return err
	}

	handler := httptransport.NewHandler(voters, issuer, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := recorder.Run(groupCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		return httpserver.Shutdown(srv)
	})

	return group.Wait()
}
