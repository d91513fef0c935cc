package main

import (
	"fmt"
	"os"

	"saludos/commons/config"
	"saludos/commons/server"
	internalConfig "saludos/internal/config"

	"go.uber.org/fx"
)

func main() {
	settings, err := internalConfig.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fx.New(
		fx.WithLogger(config.ProvideFxLogger),
		internalConfig.InfraModule(settings),
		internalConfig.JanitorModule(),
		fx.Provide(
			config.ProvideRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(func(*server.HTTPServer) {}),
	).Run()
}
