package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/provider"
	"github.com/jamolstroy/admin-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register mounts the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLoginSessionExpire, c.handleLoginSessionExpire)
	mux.HandleFunc(queue.TaskLoginSessionPurge, c.handleLoginSessionPurge)
}

func (c *Consumer) handleLoginSessionExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_login_session_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LoginSessionExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_login_session_expire_unmarshal_failed", "error", err)
		return err
	}
	token := strings.TrimSpace(payload.TempToken)
	if token == "" {
		logger.Debugw("worker_login_session_expire_skip_empty_token")
		return nil
	}
	// Only still-pending sessions are flipped, a decided session is
	// left untouched.
	expired, err := c.LoginSessionRepo.ExpireToken(token)
	if err != nil {
		logger.Warnw("worker_login_session_expire_failed", "error", err)
		return err
	}
	if expired {
		logger.Infow("worker_login_session_expired", "temp_token", token)
	}
	return nil
}

func (c *Consumer) handleLoginSessionPurge(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_login_session_purge_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LoginSessionPurgePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_login_session_purge_unmarshal_failed", "error", err)
		return err
	}
	if payload.Before.IsZero() {
		logger.Debugw("worker_login_session_purge_skip_zero_cutoff")
		return nil
	}
	purged, err := c.LoginSessionRepo.PurgeBefore(payload.Before)
	if err != nil {
		logger.Warnw("worker_login_session_purge_failed", "error", err)
		return err
	}
	if purged > 0 {
		logger.Infow("worker_login_sessions_purged", "count", purged)
	}
	return nil
}
