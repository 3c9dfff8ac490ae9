package services

import (
	"kgraph/domain/config"
	"kgraph/domain/core/aggregates"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// CompletedSet is the externally supplied set of node ids a student has
// completed. The core consumes it, never owns it.
type CompletedSet map[valueobjects.NodeID]bool

// NewCompletedSet builds a set from node ids
func NewCompletedSet(ids ...valueobjects.NodeID) CompletedSet {
	set := make(CompletedSet, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Contains checks membership
func (s CompletedSet) Contains(id valueobjects.NodeID) bool {
	return s[id]
}

// CheckResult is the outcome of a prerequisite gating check
type CheckResult struct {
	Satisfied bool
	Missing   []*entities.Node
}

// PrerequisiteChecker evaluates gating rules over an assembled graph view.
// Every call is a pure function of the view and the supplied completed set.
//
// Satisfaction policy: prerequisites are evaluated direct-only by default.
// A node is gated by its immediate prerequisite edges, on the assumption that
// those were themselves gated at earlier enrollments. Setting
// TransitivePrerequisites extends the same rule recursively down the chain.
// The policy applies uniformly to checks and next-node suggestions.
type PrerequisiteChecker struct {
	rt *config.Runtime
}

// NewPrerequisiteChecker creates a checker with the given domain policy
func NewPrerequisiteChecker(cfg *config.DomainConfig) *PrerequisiteChecker {
	return NewPrerequisiteCheckerFromRuntime(config.NewRuntime(cfg))
}

// NewPrerequisiteCheckerFromRuntime creates a checker that follows the
// runtime's active configuration snapshot
func NewPrerequisiteCheckerFromRuntime(rt *config.Runtime) *PrerequisiteChecker {
	return &PrerequisiteChecker{rt: rt}
}

// Check decides whether the completed set satisfies a node's prerequisite
// rule. Missing lists the unsatisfied prerequisite nodes in edge-creation
// order; it is empty whenever the rule is satisfied.
func (c *PrerequisiteChecker) Check(g *aggregates.GraphView, nodeID valueobjects.NodeID, completed CompletedSet) (*CheckResult, error) {
	node, err := g.Node(nodeID)
	if err != nil {
		return nil, err
	}

	guard := make(map[valueobjects.NodeID]bool)
	satisfied, missing, err := c.evaluate(g, node, completed, guard, c.rt.Current().TransitivePrerequisites)
	if err != nil {
		return nil, err
	}
	if satisfied {
		missing = []*entities.Node{}
	}

	return &CheckResult{Satisfied: satisfied, Missing: missing}, nil
}

// evaluate applies the node's ALL/ANY rule to its direct prerequisites,
// recursing when the transitive policy is enabled. The guard breaks on
// stored cycles, which edge creation should have made impossible.
func (c *PrerequisiteChecker) evaluate(g *aggregates.GraphView, node *entities.Node, completed CompletedSet, guard map[valueobjects.NodeID]bool, transitive bool) (bool, []*entities.Node, error) {
	if guard[node.ID()] {
		return false, nil, pkgerrors.NewStoredCycleError(node.ID().String())
	}
	guard[node.ID()] = true
	defer delete(guard, node.ID())

	prereqs := g.Prerequisites(node.ID())
	if len(prereqs) == 0 {
		return true, nil, nil
	}

	var missing []*entities.Node
	satisfiedCount := 0

	for _, edge := range prereqs {
		prereqNode, err := g.Node(edge.SourceID())
		if err != nil {
			return false, nil, err
		}

		ok := completed.Contains(prereqNode.ID())
		if ok && transitive {
			ok, _, err = c.evaluate(g, prereqNode, completed, guard, transitive)
			if err != nil {
				return false, nil, err
			}
		}

		if ok {
			satisfiedCount++
		} else {
			missing = append(missing, prereqNode)
		}
	}

	switch node.Requirement() {
	case entities.RequirementAny:
		return satisfiedCount > 0, missing, nil
	default:
		return len(missing) == 0, missing, nil
	}
}

// Chain returns the full transitive closure of a node's prerequisites in
// topological order, dependencies before dependents. The target node itself
// is not part of its own chain. A cycle in stored data yields a
// StoredCycleError.
func (c *PrerequisiteChecker) Chain(g *aggregates.GraphView, nodeID valueobjects.NodeID) ([]*entities.Node, error) {
	if _, err := g.Node(nodeID); err != nil {
		return nil, err
	}

	const (
		visiting = 1
		done     = 2
	)
	state := make(map[valueobjects.NodeID]int)
	var ordered []*entities.Node

	var visit func(id valueobjects.NodeID) error
	visit = func(id valueobjects.NodeID) error {
		switch state[id] {
		case visiting:
			return pkgerrors.NewStoredCycleError(id.String())
		case done:
			return nil
		}
		state[id] = visiting

		for _, edge := range g.Prerequisites(id) {
			if err := visit(edge.SourceID()); err != nil {
				return err
			}
		}

		state[id] = done
		if !id.Equals(nodeID) {
			node, err := g.Node(id)
			if err != nil {
				return err
			}
			ordered = append(ordered, node)
		}
		return nil
	}

	if err := visit(nodeID); err != nil {
		return nil, err
	}
	return ordered, nil
}

// SuggestNext returns the immediately unlockable nodes: those whose
// prerequisite rule the completed set satisfies and which are not themselves
// completed. Output is ordered by node id for determinism.
func (c *PrerequisiteChecker) SuggestNext(g *aggregates.GraphView, completed CompletedSet) ([]*entities.Node, error) {
	suggestions := []*entities.Node{}
	transitive := c.rt.Current().TransitivePrerequisites

	for _, node := range g.Nodes() {
		if completed.Contains(node.ID()) {
			continue
		}

		guard := make(map[valueobjects.NodeID]bool)
		ok, _, err := c.evaluate(g, node, completed, guard, transitive)
		if err != nil {
			return nil, err
		}
		if ok {
			suggestions = append(suggestions, node)
		}
	}

	return suggestions, nil
}
