//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"kgraph/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideDomainRuntime,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideGraphStore,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideTracer,
	ProvideJWTValidator,
	ProvideGraphLoader,
	ProvidePathFinder,
	ProvidePrerequisiteChecker,
	ProvideGraphService,
	ProvidePathService,
	ProvidePrerequisiteService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
