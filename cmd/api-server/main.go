// The api-server binary serves the storefront and admin HTTP API. All
// configuration comes from SPIDEY_-prefixed environment variables or a
// config.yaml file; see internal/app.Config.
package main

import (
	"context"

	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/McLovin18/spidey-checkout/internal/app"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := appkg.LoadConfig()
		if err != nil {
			return err
		}
		return appkg.Run(ctx, lg, m, cfg)
	})
}
