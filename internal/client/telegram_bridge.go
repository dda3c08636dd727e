package client

import (
	"context"
	"sync"
	"time"
)

// Identity describes the Telegram account behind a Mini App session.
type Identity struct {
	TelegramID string
	FirstName  string
	LastName   string
	Username   string
	InitData   string
}

// Runtime is the Telegram Mini App surface the bridge talks to once
// it is detected.
type Runtime interface {
	Identity() (*Identity, error)
	Ready()
	Expand()
}

// Bridge detects whether the process runs inside a Telegram Mini App.
// The runtime may appear some time after startup, so the bridge
// probes for it and latches the answer.
type Bridge struct {
	probe         func() Runtime
	probeInterval time.Duration
	probeTimeout  time.Duration

	mu      sync.Mutex
	ready   bool
	decided bool
	runtime Runtime
}

// NewBridge creates a bridge with the given probe. The probe returns
// nil while the runtime is not present yet.
func NewBridge(probe func() Runtime, probeInterval, probeTimeout time.Duration) *Bridge {
	if probeInterval <= 0 {
		probeInterval = 100 * time.Millisecond
	}
	if probeTimeout <= 0 {
		probeTimeout = 3 * time.Second
	}
	return &Bridge{
		probe:         probe,
		probeInterval: probeInterval,
		probeTimeout:  probeTimeout,
	}
}

// WaitReady probes until the runtime shows up or the probe window
// closes. The first positive detection latches: later calls return
// immediately. On detection the runtime is acknowledged and expanded.
func (b *Bridge) WaitReady(ctx context.Context) bool {
	b.mu.Lock()
	if b.decided {
		ready := b.ready
		b.mu.Unlock()
		return ready
	}
	b.mu.Unlock()

	if b.probe == nil {
		b.mu.Lock()
		b.decided = true
		b.mu.Unlock()
		return false
	}

	// The first probe always runs; after the window closes no further
	// probe may flip the answer.
	deadline := time.Now().Add(b.probeTimeout)
	for first := true; ; first = false {
		if !first && time.Now().After(deadline) {
			b.mu.Lock()
			b.decided = true
			b.mu.Unlock()
			return false
		}
		if runtime := b.probe(); runtime != nil {
			runtime.Ready()
			runtime.Expand()
			b.mu.Lock()
			b.ready = true
			b.decided = true
			b.runtime = runtime
			b.mu.Unlock()
			return true
		}
		select {
		case <-ctx.Done():
			b.mu.Lock()
			b.decided = true
			b.mu.Unlock()
			return false
		case <-time.After(b.probeInterval):
		}
	}
}

// IsTelegramWebApp reports the latched detection result.
func (b *Bridge) IsTelegramWebApp() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// Identity returns the Telegram identity once the runtime is ready.
func (b *Bridge) Identity() (*Identity, error) {
	b.mu.Lock()
	runtime := b.runtime
	b.mu.Unlock()
	if runtime == nil {
		return nil, nil
	}
	return runtime.Identity()
}
