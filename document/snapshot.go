package document

// Snapshot captures the pieces of node state that style invalidation needs
// to diff against once a mutation has happened: the attribute set and
// interactive flags as they stood immediately before the change.
type Snapshot struct {
	Attrs     []Attr
	IDAttr    string
	StyleAttr string
	Hovered   bool
	Focused   bool
	Active    bool
}

// SnapshotNode records id's pre-mutation state the first time it is called
// for id since the last invalidation flush; later calls before a flush are
// no-ops, so a node touched several times in one update still diffs against
// its state at the start of that update.
func (d *Document) SnapshotNode(id NodeID) {
	if _, exists := d.snapshots[id]; exists {
		return
	}
	n, ok := d.arena.GetNode(id)
	if !ok {
		return
	}
	attrs := make([]Attr, len(n.Attrs))
	copy(attrs, n.Attrs)
	d.snapshots[id] = &Snapshot{
		Attrs:     attrs,
		IDAttr:    n.IDAttr,
		StyleAttr: n.StyleAttr,
		Hovered:   n.Hovered,
		Focused:   n.Focused,
		Active:    n.Active,
	}
}

// SnapshotNodeAnd snapshots id and then applies mutate to it in one step.
func (d *Document) SnapshotNodeAnd(id NodeID, mutate func(*Node)) {
	d.SnapshotNode(id)
	if n, ok := d.arena.GetNodeMut(id); ok {
		mutate(n)
	}
}

// TakeSnapshots drains and returns the accumulated pre-mutation snapshots,
// clearing the pending set so the next update cycle starts fresh.
func (d *Document) TakeSnapshots() map[NodeID]*Snapshot {
	taken := d.snapshots
	d.snapshots = make(map[NodeID]*Snapshot)
	return taken
}

// PendingSnapshotCount reports how many nodes currently have an unflushed
// snapshot recorded.
func (d *Document) PendingSnapshotCount() int {
	return len(d.snapshots)
}
