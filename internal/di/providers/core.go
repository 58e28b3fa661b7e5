// Package providers contains dependency injection providers for the Quill server.
package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/quillapp/quill-server/internal/config"
	"github.com/quillapp/quill-server/internal/logger"
	"github.com/quillapp/quill-server/internal/markdown"
	"github.com/quillapp/quill-server/internal/ratelimit"
	"github.com/quillapp/quill-server/internal/validation"
)

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Quill Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.BasePath,
	)

	return log, nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideMarkdownRenderer provides the markdown renderer.
func ProvideMarkdownRenderer(i do.Injector) (*markdown.Renderer, error) {
	return markdown.NewRenderer(), nil
}

// LoginLimiterHandle wraps the login rate limiter with shutdown capability.
type LoginLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *LoginLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideLoginLimiter provides the per-IP login rate limiter.
func ProvideLoginLimiter(i do.Injector) (*LoginLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	limiter := ratelimit.New(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginRatePerMinute)
	return &LoginLimiterHandle{KeyedRateLimiter: limiter}, nil
}
