package main

import (
	"context"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
)

const serviceName string = "wikibase-dcatap"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("starting %s %s", serviceName, serviceVersion)

	if err := Execute(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to generate dcat-ap catalog")
	}
}
