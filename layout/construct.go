package layout

import (
	"strings"

	"github.com/cyrup-ai/blitz-sub000/document"
	"github.com/cyrup-ai/blitz-sub000/text"
)

// ConstructLayoutChildren rebuilds id's LayoutChildren from its DOM
// Children, recursing first so descendants are constructed bottom-up: wraps
// runs of inline/text children into anonymous blocks when the container
// also has block children, derives a single inline layout context for
// containers that are entirely inline, prepends/appends before/after
// pseudo-elements, and skips display:none subtrees entirely.
func (e *Engine) ConstructLayoutChildren(id document.NodeID) {
	n, ok := e.Doc.GetNode(id)
	if !ok {
		return
	}

	for _, c := range n.Children {
		e.ConstructLayoutChildren(c)
	}

	display := DisplayBlock
	if e.Style != nil {
		display = e.Style.Display(id)
	}
	if display == DisplayNone {
		if nm, ok := e.Doc.GetNodeMut(id); ok {
			nm.LayoutChildren = nil
		}
		return
	}

	var children []document.NodeID
	if n.Before != document.NoNode {
		children = append(children, n.Before)
	}

	visible := visibleChildren(e, n.Children)

	if display == DisplayContents {
		children = append(children, visible...)
	} else if allInline(e, visible) && len(visible) > 0 {
		children = append(children, e.buildInlineRoot(id, visible))
	} else {
		children = append(children, wrapAnonymousBlocks(e, visible)...)
	}

	if n.After != document.NoNode {
		children = append(children, n.After)
	}

	if nm, ok := e.Doc.GetNodeMut(id); ok {
		nm.LayoutChildren = children
		nm.PaintChildren = children
	}
}

func visibleChildren(e *Engine, ids []document.NodeID) []document.NodeID {
	out := make([]document.NodeID, 0, len(ids))
	for _, id := range ids {
		if e.Style != nil && e.Style.Display(id) == DisplayNone {
			continue
		}
		out = append(out, id)
	}
	return out
}

func allInline(e *Engine, ids []document.NodeID) bool {
	for _, id := range ids {
		n, ok := e.Doc.GetNode(id)
		if !ok {
			continue
		}
		if n.Kind == document.KindText {
			continue
		}
		if e.Style != nil && e.Style.Display(id) != DisplayInline {
			return false
		}
	}
	return true
}

// wrapAnonymousBlocks scans ids left to right, opening an anonymous block
// box whenever it meets an inline/text child and closing it when a block
// child follows; a run that collects only whitespace text is discarded
// rather than emitted as an empty anonymous block.
func wrapAnonymousBlocks(e *Engine, ids []document.NodeID) []document.NodeID {
	var out []document.NodeID
	var run []document.NodeID
	var runText strings.Builder

	flush := func() {
		if len(run) == 0 {
			return
		}
		if strings.TrimSpace(runText.String()) == "" {
			run = nil
			runText.Reset()
			return
		}
		anon := e.Doc.CreateNode(&document.Node{
			Kind:     document.KindAnonymousBlock,
			Children: run,
			Before:   document.NoNode,
			After:    document.NoNode,
		})
		for _, c := range run {
			if cn, ok := e.Doc.GetNodeMut(c); ok {
				cn.Parent = anon
			}
		}
		out = append(out, anon)
		run = nil
		runText.Reset()
	}

	for _, id := range ids {
		n, ok := e.Doc.GetNode(id)
		if !ok {
			continue
		}
		isInline := n.Kind == document.KindText || (e.Style != nil && e.Style.Display(id) == DisplayInline)
		if isInline {
			run = append(run, id)
			if n.Kind == document.KindText {
				runText.WriteString(n.Text)
			} else {
				runText.WriteString("x")
			}
			continue
		}
		flush()
		out = append(out, id)
	}
	flush()
	return out
}

// buildInlineRoot collects the text content of ids, shapes it, and returns
// a synthetic inline-root node carrying the resulting InlineLayoutData.
func (e *Engine) buildInlineRoot(owner document.NodeID, ids []document.NodeID) document.NodeID {
	var content strings.Builder
	for _, id := range ids {
		content.WriteString(collectText(e, id))
	}
	collapsed := text.CollapseWhiteSpace(content.String(), text.CollapseCollapse)

	root := e.Doc.CreateNode(&document.Node{
		Kind:     document.KindAnonymousBlock,
		Children: ids,
		Before:   document.NoNode,
		After:    document.NoNode,
		Flags:    document.FlagIsInlineRoot,
		RoleData: document.InlineLayoutData{Buffer: collapsed},
	})
	for _, id := range ids {
		if cn, ok := e.Doc.GetNodeMut(id); ok {
			cn.Parent = root
		}
	}
	return root
}

func collectText(e *Engine, id document.NodeID) string {
	n, ok := e.Doc.GetNode(id)
	if !ok {
		return ""
	}
	if n.Kind == document.KindText {
		return n.Text
	}
	var out strings.Builder
	for _, c := range n.Children {
		out.WriteString(collectText(e, c))
	}
	return out.String()
}
