package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
	"github.com/fivetwenty-io/bshengine-client/pkg/bshengine"
)

// newEngine builds an Engine from the CLI configuration. The returned func
// releases the event publisher connection, if any.
func newEngine(requireAuth bool) (*bshengine.Engine, func(), error) {
	config := loadConfig()

	if config.Host == "" {
		return nil, nil, constants.ErrNoHostConfigured
	}

	if requireAuth && config.APIKey == "" && config.Token == "" {
		return nil, nil, constants.ErrNotLoggedIn
	}

	logger := cliLogger()

	engineConfig := &bsh.Config{
		Host:        config.Host,
		APIKey:      config.APIKey,
		AccessToken: config.Token,
		HTTPTimeout: constants.ExtendedHTTPTimeout,
		Debug:       viper.GetBool("verbose"),
		Logger:      logger,
	}

	opts := []bshengine.Option{
		// Read on every refresh so a new login is picked up.
		bshengine.WithRefresher(bsh.RefresherFunc(func(context.Context) (string, error) {
			return loadConfig().RefreshToken, nil
		})),
		bshengine.WithTokenPersister(NewConfigPersister().PersistAccessToken),
	}

	cleanup := func() {}

	if natsURL := viper.GetString("events_nats_url"); natsURL != "" {
		publisher, closeFn, err := bsh.ConnectEventPublisher(natsURL, "", logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect event publisher: %w", err)
		}

		opts = append(opts, bshengine.WithEventPublisher(publisher))
		cleanup = closeFn
	}

	engine, err := bshengine.NewFromConfig(engineConfig, opts...)
	if err != nil {
		cleanup()

		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	return engine, cleanup, nil
}

func cliLogger() bsh.Logger {
	if !viper.GetBool("verbose") {
		return nil
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})

	return bsh.NewSlogLogger(slog.New(handler))
}
