package dag

import "sync"

// set is a set of construct IDs.
type set map[string]struct{}

// Graph records which constructs reference which. Edges point from the
// referenced construct to the one holding the reference. It is safe for
// concurrent use.
type Graph struct {
	mu sync.RWMutex
	// refs maps a construct to the constructs it references.
	refs map[string]set
	// referrers maps a construct to the constructs referencing it.
	referrers map[string]set
}
