package rest

import (
	"net/http"

	"kgraph/application/services"
	"kgraph/interfaces/http/rest/handlers"
	"kgraph/interfaces/http/rest/middleware"
	"kgraph/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	graphService  *services.GraphService
	pathService   *services.PathService
	prereqService *services.PrerequisiteService
	validator     *auth.JWTValidator
	enableCORS    bool
	logger        *zap.Logger
}

// NewRouter creates a new router instance. A nil validator disables JWT
// checks on the API routes.
func NewRouter(
	graphService *services.GraphService,
	pathService *services.PathService,
	prereqService *services.PrerequisiteService,
	validator *auth.JWTValidator,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		graphService:  graphService,
		pathService:   pathService,
		prereqService: prereqService,
		validator:     validator,
		enableCORS:    enableCORS,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		graphHandler := handlers.NewGraphHandler(rt.graphService, rt.logger)
		prereqHandler := handlers.NewPrerequisiteHandler(rt.prereqService, rt.logger)

		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", graphHandler.CreateNode)
			r.Get("/", graphHandler.ListNodes)
			r.Get("/{nodeID}", graphHandler.GetNode)
			r.Put("/{nodeID}", graphHandler.UpdateNode)
			r.Delete("/{nodeID}", graphHandler.DeleteNode)
			r.Get("/{nodeID}/neighbors", graphHandler.GetNeighbors)

			r.Post("/{nodeID}/prerequisites/check", prereqHandler.CheckPrerequisites)
			r.Get("/{nodeID}/prerequisites/chain", prereqHandler.GetPrerequisiteChain)
		})

		r.Route("/edges", func(r chi.Router) {
			r.Post("/", graphHandler.CreateEdge)
			r.Get("/", graphHandler.ListEdges)
			r.Get("/{edgeID}", graphHandler.GetEdge)
			r.Delete("/{edgeID}", graphHandler.DeleteEdge)
		})

		r.Route("/paths", func(r chi.Router) {
			pathHandler := handlers.NewPathHandler(rt.pathService, rt.logger)
			r.Get("/shortest", pathHandler.FindShortestPath)
			r.Get("/all", pathHandler.FindAllPaths)
			r.Get("/optimize", pathHandler.OptimizePath)
		})

		r.Post("/prerequisites/suggest", prereqHandler.SuggestNext)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
