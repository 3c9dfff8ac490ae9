package config

import "kgraph/domain/core/entities"

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Graph constraints
	MaxNodes int
	MaxEdges int

	// Edge constraints
	MinEdgeWeight     float64
	DefaultEdgeWeight float64

	// Traversal limits
	MaxPathDepth    int
	MaxPathResults  int
	DefaultMaxDepth int

	// Uniqueness policy for duplicate node detection. When false, labels are
	// compared case-insensitively after whitespace trimming.
	CaseSensitiveLabels bool

	// Prerequisite policy. When false, only immediate prerequisite edges are
	// evaluated by satisfaction checks; the full chain is assumed to have been
	// gated at earlier enrollments. Applied uniformly to prerequisite checks
	// and next-node suggestions.
	TransitivePrerequisites bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodes: 10000,
		MaxEdges: 50000,

		MinEdgeWeight:     0.0,
		DefaultEdgeWeight: entities.DefaultEdgeWeight,

		MaxPathDepth:    50,
		MaxPathResults:  100,
		DefaultMaxDepth: 10,

		CaseSensitiveLabels:     false,
		TransitivePrerequisites: false,
	}
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	cfg.MaxNodes = 100000
	cfg.MaxEdges = 500000
	cfg.MaxPathDepth = 100

	return cfg
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.MinEdgeWeight < 0 {
		c.MinEdgeWeight = 0
	}
	if c.DefaultMaxDepth > c.MaxPathDepth {
		c.DefaultMaxDepth = c.MaxPathDepth
	}
	return nil
}
