package worker

import (
	"context"
	"errors"
	"time"

	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	loginSessionSweepInterval = time.Minute
	loginSessionRetention     = 24 * time.Hour
)

// Service is the async queue worker.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the worker service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the task server and the periodic session sweep.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Container != nil {
		go s.runLoginSessionSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the worker down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runLoginSessionSweepLoop is the safety net behind the delayed
// expiry tasks. It flips overdue pending sessions and hard-deletes
// sessions past retention so the table does not accumulate tokens.
func (s *Service) runLoginSessionSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.Container == nil {
		return
	}
	runOnce := func() {
		now := time.Now()
		if expired, err := s.consumer.LoginSessionRepo.ExpireDue(now); err != nil {
			logger.Warnw("worker_login_session_expire_due_failed", "error", err)
		} else if expired > 0 {
			logger.Infow("worker_login_sessions_expired", "count", expired)
		}
		if purged, err := s.consumer.LoginSessionRepo.PurgeBefore(now.Add(-loginSessionRetention)); err != nil {
			logger.Warnw("worker_login_session_purge_failed", "error", err)
		} else if purged > 0 {
			logger.Infow("worker_login_sessions_purged", "count", purged)
		}
	}
	runOnce()

	ticker := time.NewTicker(loginSessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
