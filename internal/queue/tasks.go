package queue

import (
	"encoding/json"
	"time"

	"github.com/jamolstroy/admin-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLoginSessionExpire flips an overdue login session to expired.
	TaskLoginSessionExpire = constants.TaskLoginSessionExpire
	// TaskLoginSessionPurge hard-deletes login sessions past retention.
	TaskLoginSessionPurge = constants.TaskLoginSessionPurge
)

// LoginSessionExpirePayload identifies the session to expire.
type LoginSessionExpirePayload struct {
	TempToken string `json:"temp_token"`
}

// NewLoginSessionExpireTask creates a login session expiry task.
func NewLoginSessionExpireTask(payload LoginSessionExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLoginSessionExpire, body), nil
}

// LoginSessionPurgePayload bounds the purge window.
type LoginSessionPurgePayload struct {
	Before time.Time `json:"before"`
}

// NewLoginSessionPurgeTask creates a login session purge task.
func NewLoginSessionPurgeTask(payload LoginSessionPurgePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLoginSessionPurge, body), nil
}
