package document

import (
	"fmt"

	"github.com/google/uuid"
)

// Arena is a slab-backed store of nodes indexed by stable NodeID. Deleting a
// node leaves its slot vacant for reuse by a later CreateNode call, so a
// NodeID issued before a deletion never silently aliases a different node
// unless that exact slot is reissued.
type Arena struct {
	slots []*Node
	free  []NodeID
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// CreateNode inserts data into the arena, assigning it a fresh or reclaimed
// NodeID, and returns that ID.
func (a *Arena) CreateNode(data *Node) NodeID {
	var id NodeID
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		id = NodeID(len(a.slots))
		a.slots = append(a.slots, nil)
	}
	data.ID = id
	data.Identity = uuid.New()
	a.slots[id] = data
	return id
}

// GetNode returns the node at id, or (nil, false) if the slot is empty or
// out of range.
func (a *Arena) GetNode(id NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(a.slots) {
		return nil, false
	}
	n := a.slots[id]
	return n, n != nil
}

// GetNodeMut is an alias for GetNode: Go has no const/mut pointer
// distinction, but callers that intend to mutate the returned node read
// better spelling out the intent at the call site.
func (a *Arena) GetNodeMut(id NodeID) (*Node, bool) {
	return a.GetNode(id)
}

// freeSlot vacates id for reuse. It does not touch parent/child links; the
// caller is responsible for removing id from its parent's Children first.
func (a *Arena) freeSlot(id NodeID) {
	if id < 0 || int(id) >= len(a.slots) || a.slots[id] == nil {
		return
	}
	a.slots[id] = nil
	a.free = append(a.free, id)
}

// Len reports how many slots are currently occupied.
func (a *Arena) Len() int {
	return len(a.slots) - len(a.free)
}

// DeepCloneNode recursively clones id and its entire subtree (Children,
// Before, After) into fresh slots, returning the clone's root ID. The clone
// starts detached: callers are responsible for linking it to a new parent.
func (a *Arena) DeepCloneNode(id NodeID) (NodeID, error) {
	src, ok := a.GetNode(id)
	if !ok {
		return NoNode, errNodeNotFound(id)
	}

	clone := *src
	clone.Parent = NoNode
	clone.Children = nil
	clone.Before = NoNode
	clone.After = NoNode
	newID := a.CreateNode(&clone)

	if src.Before != NoNode {
		b, err := a.DeepCloneNode(src.Before)
		if err != nil {
			return NoNode, err
		}
		if n, ok := a.GetNodeMut(newID); ok {
			n.Before = b
		}
		if bn, ok := a.GetNodeMut(b); ok {
			bn.Parent = newID
		}
	}

	newChildren := make([]NodeID, 0, len(src.Children))
	for _, c := range src.Children {
		nc, err := a.DeepCloneNode(c)
		if err != nil {
			return NoNode, err
		}
		if cn, ok := a.GetNodeMut(nc); ok {
			cn.Parent = newID
		}
		newChildren = append(newChildren, nc)
	}
	if n, ok := a.GetNodeMut(newID); ok {
		n.Children = newChildren
	}

	if src.After != NoNode {
		af, err := a.DeepCloneNode(src.After)
		if err != nil {
			return NoNode, err
		}
		if n, ok := a.GetNodeMut(newID); ok {
			n.After = af
		}
		if afn, ok := a.GetNodeMut(af); ok {
			afn.Parent = newID
		}
	}

	return newID, nil
}

// RemoveAndDropPE detaches id from its parent's child list (if any) and
// recursively frees id, its pseudo-element children (Before/After), and its
// entire DOM subtree. It is a no-op if id does not exist.
func (a *Arena) RemoveAndDropPE(id NodeID) {
	n, ok := a.GetNode(id)
	if !ok {
		return
	}

	if n.Parent != NoNode {
		if parent, ok := a.GetNodeMut(n.Parent); ok {
			parent.Children = removeNodeID(parent.Children, id)
		}
	}

	a.freeSubtree(id)
}

// freeSubtree frees id and everything reachable from it (pseudo-elements
// and DOM children) without touching the parent's child list.
func (a *Arena) freeSubtree(id NodeID) {
	n, ok := a.GetNode(id)
	if !ok {
		return
	}
	if n.Before != NoNode {
		a.freeSubtree(n.Before)
	}
	if n.After != NoNode {
		a.freeSubtree(n.After)
	}
	for _, c := range n.Children {
		a.freeSubtree(c)
	}
	a.freeSlot(id)
}

func removeNodeID(s []NodeID, v NodeID) []NodeID {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

type nodeNotFoundError struct{ id NodeID }

func (e *nodeNotFoundError) Error() string {
	return fmt.Sprintf("document: no node at id %d", e.id)
}

func errNodeNotFound(id NodeID) error {
	return &nodeNotFoundError{id: id}
}
