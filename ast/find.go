package ast

import (
	"github.com/npillmayer/csstree/broadcast"
	"github.com/npillmayer/csstree/syntax"
)

// FindAll returns all nodes of type T in the tree below and including root, in
// depth-first order. Destroyed nodes are not found, as they are not part of the
// tree any more.
func FindAll[T syntax.Node](root syntax.Node) []T {
	q := broadcast.NewQueryable(nil)
	if err := syntax.Propagate(q, root); err != nil {
		tracer().Errorf("find: %v", err)
		return nil
	}
	return broadcast.Filter[T](q)
}

// Find returns the first node of type T in the tree below and including root.
func Find[T syntax.Node](root syntax.Node) (T, bool) {
	all := FindAll[T](root)
	if len(all) == 0 {
		var zero T
		return zero, false
	}
	return all[0], true
}
