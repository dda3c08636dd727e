package app

import (
	"errors"

	"github.com/jamolstroy/admin-api/internal/bot"
	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/provider"
	"github.com/jamolstroy/admin-api/internal/router"
	"github.com/jamolstroy/admin-api/internal/worker"
)

// BuildRunner assembles the services for the requested mode.
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else if mode == ModeWorker {
			return nil, errors.New("queue disabled")
		}
	}

	if mode == ModeAll || mode == ModeBot {
		if cfg.TelegramAuth.Enabled {
			botService, err := bot.New(cfg, container)
			if err != nil {
				if mode == ModeBot {
					return nil, err
				}
				logger.Warnw("app_bot_init_failed", "error", err)
			} else {
				services = append(services, botService)
			}
		} else if mode == ModeBot {
			return nil, errors.New("telegram auth disabled")
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run is the application entrypoint.
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
