package di

import (
	"kgraph/application/ports"
	"kgraph/application/services"
	domaincfg "kgraph/domain/config"
	"kgraph/infrastructure/config"
	"kgraph/pkg/auth"
	"kgraph/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DomainRuntime *domaincfg.Runtime
	Store         ports.GraphStore
	Publisher     ports.EventPublisher
	Metrics       *observability.Metrics
	Tracer        *observability.Tracer
	JWTValidator  *auth.JWTValidator
	GraphService  *services.GraphService
	PathService   *services.PathService
	PrereqService *services.PrerequisiteService
}
