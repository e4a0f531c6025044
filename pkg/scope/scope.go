// Package scope restricts designer operations to a boundary element.
//
// An element is in scope when it is the boundary or one of its descendants,
// or when it lies inside one of the guard's named exception regions (the
// property panel). [InScope] and [InRegion] are pure predicates over any
// parent-linked node type; [Guard] combines them and turns out-of-scope
// operations into logged no-ops.
package scope

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/formgrid/pkg/observability"
)

// Node is a parent-linked tree node. The zero value of N terminates the
// parent chain.
type Node[N any] interface {
	comparable
	Parent() N
}

// InScope reports whether node is boundary or a descendant of it. A zero
// node or boundary is never in scope.
func InScope[N Node[N]](node, boundary N) bool {
	var zero N
	if boundary == zero {
		return false
	}
	for n := node; n != zero; n = n.Parent() {
		if n == boundary {
			return true
		}
	}
	return false
}

// Region is a named exception region.
type Region[N Node[N]] struct {
	Name string
	Root N
}

// InRegion returns the name of the first region containing node.
func InRegion[N Node[N]](node N, regions []Region[N]) (string, bool) {
	for _, r := range regions {
		if InScope(node, r.Root) {
			return r.Name, true
		}
	}
	return "", false
}

// Guard checks operations against a boundary and exception regions.
type Guard[N Node[N]] struct {
	boundary N
	regions  []Region[N]
	logger   *log.Logger
}

// NewGuard creates a guard for boundary. A nil logger discards rejections.
func NewGuard[N Node[N]](boundary N, logger *log.Logger, regions ...Region[N]) *Guard[N] {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Guard[N]{boundary: boundary, regions: slices.Clone(regions), logger: logger}
}

// Boundary returns the guard's boundary.
func (g *Guard[N]) Boundary() N { return g.boundary }

// AddRegion registers an exception region, replacing any region with the
// same name.
func (g *Guard[N]) AddRegion(name string, root N) {
	g.regions = slices.DeleteFunc(g.regions, func(r Region[N]) bool { return r.Name == name })
	g.regions = append(g.regions, Region[N]{Name: name, Root: root})
}

// Contains reports whether node is in scope without logging.
func (g *Guard[N]) Contains(node N) bool {
	if InScope(node, g.boundary) {
		return true
	}
	_, ok := InRegion(node, g.regions)
	return ok
}

// Allow reports whether op may target node. Rejections are logged at warn
// level and reported to the designer hooks; they are not errors.
func (g *Guard[N]) Allow(node N, op string) bool {
	if g.Contains(node) {
		return true
	}
	target := "<nil>"
	var zero N
	if node != zero {
		target = describe(node)
	}
	g.logger.Warn("operation outside designer scope ignored", "op", op, "target", target)
	observability.Designer().OnScopeReject(op, target)
	return false
}

func describe(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
