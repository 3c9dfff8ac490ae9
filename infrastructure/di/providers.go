package di

import (
	"context"
	"fmt"

	"kgraph/application/ports"
	"kgraph/application/services"
	domaincfg "kgraph/domain/config"
	domainservices "kgraph/domain/services"
	"kgraph/infrastructure/config"
	"kgraph/infrastructure/messaging/eventbridge"
	dynamostore "kgraph/infrastructure/persistence/dynamodb"
	"kgraph/infrastructure/persistence/memory"
	"kgraph/pkg/auth"
	"kgraph/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDomainConfig exposes the domain rules bundled in the app config
func ProvideDomainConfig(cfg *config.Config) *domaincfg.DomainConfig {
	return cfg.Domain
}

// ProvideDomainRuntime wraps the domain rules in a hot-swappable snapshot so
// a dynamic config reload never races request goroutines
func ProvideDomainRuntime(cfg *domaincfg.DomainConfig) *domaincfg.Runtime {
	return domaincfg.NewRuntime(cfg)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideGraphStore selects the persistence backend from configuration.
func ProvideGraphStore(
	cfg *config.Config,
	client *awsdynamodb.Client,
	logger *zap.Logger,
) (ports.GraphStore, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		return memory.NewGraphStore(cfg.Domain.CaseSensitiveLabels), nil
	case config.StoreBackendDynamoDB:
		return dynamostore.NewGraphStore(
			client,
			cfg.DynamoDBTable,
			cfg.GSI1IndexName,
			cfg.GSI2IndexName,
			cfg.Domain.CaseSensitiveLabels,
			logger,
		), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.StoreBackend)
	}
}

// ProvideEventPublisher creates the publisher, or nil when no bus is
// configured; services treat a nil publisher as a no-op.
func ProvideEventPublisher(
	cfg *config.Config,
	client *awseventbridge.Client,
	logger *zap.Logger,
) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the metrics recorder; nil client disables emission.
func ProvideMetrics(cfg *config.Config, client *awscloudwatch.Client) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics("KGraph", nil)
	}
	return observability.NewMetrics("KGraph", client)
}

// ProvideTracer creates the tracer when tracing is enabled.
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("kgraph")
}

// ProvideJWTValidator creates the token validator, or nil when auth is off.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if !cfg.EnableAuth {
		return nil, nil
	}
	return auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer)
}

// ProvideGraphLoader creates the graph loader
func ProvideGraphLoader(store ports.GraphStore, metrics *observability.Metrics, logger *zap.Logger) *services.GraphLoader {
	return services.NewGraphLoader(store, metrics, logger)
}

// ProvidePathFinder creates the path finder
func ProvidePathFinder(rt *domaincfg.Runtime) *domainservices.PathFinder {
	return domainservices.NewPathFinderFromRuntime(rt)
}

// ProvidePrerequisiteChecker creates the prerequisite checker
func ProvidePrerequisiteChecker(rt *domaincfg.Runtime) *domainservices.PrerequisiteChecker {
	return domainservices.NewPrerequisiteCheckerFromRuntime(rt)
}

// ProvideGraphService creates the graph service
func ProvideGraphService(
	store ports.GraphStore,
	loader *services.GraphLoader,
	publisher ports.EventPublisher,
	cfg *domaincfg.DomainConfig,
	logger *zap.Logger,
) *services.GraphService {
	return services.NewGraphService(store, loader, publisher, cfg, logger)
}

// ProvidePathService creates the path service
func ProvidePathService(
	loader *services.GraphLoader,
	finder *domainservices.PathFinder,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *services.PathService {
	return services.NewPathService(loader, finder, metrics, tracer, logger)
}

// ProvidePrerequisiteService creates the prerequisite service
func ProvidePrerequisiteService(
	loader *services.GraphLoader,
	checker *domainservices.PrerequisiteChecker,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.PrerequisiteService {
	return services.NewPrerequisiteService(loader, checker, metrics, logger)
}
