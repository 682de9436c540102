package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chloebrgr/docksched/api/health"
	"github.com/chloebrgr/docksched/api/missions"
	apischedule "github.com/chloebrgr/docksched/api/schedule"
	"github.com/chloebrgr/docksched/config"
	coremetrics "github.com/chloebrgr/docksched/core/metrics"
	coremon "github.com/chloebrgr/docksched/core/monitoring"
	"github.com/chloebrgr/docksched/core/registry"
	"github.com/chloebrgr/docksched/core/scheduling"
	"github.com/chloebrgr/docksched/core/scheduling/logging"
	"github.com/chloebrgr/docksched/infra/logger"
	"github.com/chloebrgr/docksched/infra/metrics"
	"github.com/chloebrgr/docksched/infra/monitoring"
	"github.com/chloebrgr/docksched/infra/mqtt"
	"github.com/chloebrgr/docksched/internal/eventbus"
)

// Service orchestrates the scheduling engine, the MQTT ingestion pipeline
// and the HTTP API.
type Service struct {
	Engine   *scheduling.Engine
	ingestor *mqtt.Ingestor
	client   *mqtt.PahoClient
	audit    logging.AuditStore
	log      logger.Logger
	cfg      *config.Config
	promPort string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	reg, err := registry.New(cfg.Registry.Ports)
	if err != nil {
		return nil, fmt.Errorf("port registry: %w", err)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New()
	engine, err := scheduling.NewEngine(reg, cfg.Scheduling, sink, bus, mon, logg)
	if err != nil {
		return nil, fmt.Errorf("scheduling engine: %w", err)
	}

	audit, err := logging.New(cfg.Audit)
	if err != nil {
		return nil, fmt.Errorf("audit store: %w", err)
	}
	engine.SetAuditStore(audit)

	svc := &Service{
		Engine:   engine,
		audit:    audit,
		log:      logg,
		cfg:      cfg,
		promPort: cfg.Metrics.PrometheusPort,
	}

	if cfg.MQTT.Broker != "" {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.client = client
		svc.ingestor = mqtt.NewIngestor(client, client, engine)
	}

	return svc, nil
}

// Handler builds the HTTP API routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/health", health.NewHandler())
	mux.Handle("/api/missions", missions.NewScheduleHandler(s.Engine))
	mux.Handle("/api/decisions", missions.NewDecisionLogHandler(s.audit, s.cfg.API.Token))
	mux.Handle("/api/schedule", apischedule.NewSnapshotHandler(s.Engine))
	mux.Handle("/api/schedule/reset", apischedule.NewResetHandler(s.Engine))
	mux.Handle("/api/ports/kpis", apischedule.NewKPIHandler(s.Engine))
	return mux
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.ingestor != nil {
		if err := s.ingestor.Start(); err != nil {
			return fmt.Errorf("mqtt ingestor: %w", err)
		}
	}
	if s.cfg.API.Enabled {
		srv := &http.Server{Addr: s.cfg.API.Address, Handler: s.Handler()}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.log.Errorf("api server shutdown: %v", err)
			}
		}()
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.log.Errorf("api server: %v", err)
			}
		}()
	}
	if s.promPort != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.ingestor != nil {
		s.ingestor.Stop()
	} else if s.client != nil {
		s.client.Disconnect()
	}
	err := s.Engine.Close()
	coremon.Flush(2 * time.Second)
	return err
}
