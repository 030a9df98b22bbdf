package main

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"pronostico/internal/wiring"
	"pronostico/pkg/config"
	"pronostico/pkg/logger"
)

type commandContext struct {
	envFlag *string

	once     sync.Once
	config   *config.Config
	services *wiring.Services
	err      error
}

func newCommandContext(envFlag *string) *commandContext {
	return &commandContext{envFlag: envFlag}
}

// ensureServices loads configuration and builds the services on first use.
func (c *commandContext) ensureServices(ctx context.Context) (*wiring.Services, *config.Config, error) {
	c.once.Do(func() {
		if c.envFlag != nil {
			if path := strings.TrimSpace(*c.envFlag); path != "" {
				_ = godotenv.Load(path)
			}
		}

		cfg := &config.Config{}
		if err := config.ReadEnvConfig(cfg); err != nil {
			c.err = err
			return
		}
		c.config = cfg

		log := logger.New(os.Stderr, cfg.LogLevel)
		c.services, c.err = wiring.NewServices(ctx, cfg, log)
	})
	return c.services, c.config, c.err
}

func (c *commandContext) close() error {
	if c.services == nil {
		return nil
	}
	return c.services.Close()
}
