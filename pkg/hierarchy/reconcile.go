package hierarchy

import "github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"

// Reconcile merges freshly inferred edges into an existing edge list.
//
// Previously inferred edges are dropped unconditionally: inferences are
// always regenerated wholesale, never patched, so a stale containment edge
// cannot survive a rebuild. User-authored (non-inferred) edges are kept
// verbatim in their original relative order. Each new inferred edge is then
// appended, in generation order, unless an edge with the same unordered
// endpoint pair is already present.
//
// Reconcile is idempotent: running it again with the same inferred set
// yields an identical edge list.
func Reconcile(existing, inferred []topo.Edge) []topo.Edge {
	kept := make([]topo.Edge, 0, len(existing)+len(inferred))
	pairs := make(map[string]struct{}, len(existing))

	for _, e := range existing {
		if e.Data.Inferred {
			continue
		}
		kept = append(kept, e)
		pairs[e.PairKey()] = struct{}{}
	}

	for _, e := range inferred {
		if _, dup := pairs[e.PairKey()]; dup {
			continue
		}
		kept = append(kept, e)
		pairs[e.PairKey()] = struct{}{}
	}

	return kept
}
