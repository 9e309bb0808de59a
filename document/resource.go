package document

import (
	"go.uber.org/zap"

	"github.com/cyrup-ai/blitz-sub000/css"
)

// ResourceKind tags which variant a Resource carries.
type ResourceKind int

const (
	ResourceNone ResourceKind = iota
	ResourceCSS
	ResourceImage
	ResourceSVG
	ResourceFont
)

// Resource is the payload delivered by an asynchronous loader once a
// network fetch triggered by the document completes.
type Resource struct {
	Kind   ResourceKind
	NodeID NodeID

	Sheet *css.Stylesheet

	ImageWidth, ImageHeight int
	ImageBytes              []byte
	IsSVG                   bool

	FontBytes []byte
}

// LoadResource installs the resource's payload onto its owning node. A
// resource naming a node that no longer exists is dropped with a warning;
// this happens routinely when a node is removed while its image or
// stylesheet fetch is still in flight.
func (d *Document) LoadResource(res Resource) error {
	switch res.Kind {
	case ResourceNone:
		return nil

	case ResourceCSS:
		if _, ok := d.arena.GetNode(res.NodeID); !ok {
			d.log.Warn("dropping stylesheet resource for missing node", zap.Int("node", int(res.NodeID)))
			return nil
		}
		d.AddStylesheetForNode(res.NodeID, res.Sheet)
		return nil

	case ResourceImage, ResourceSVG:
		n, ok := d.arena.GetNodeMut(res.NodeID)
		if !ok {
			d.log.Warn("dropping image resource for missing node", zap.Int("node", int(res.NodeID)))
			return nil
		}
		d.SnapshotNode(res.NodeID)
		n.RoleData = ImageData{
			Width:  res.ImageWidth,
			Height: res.ImageHeight,
			Bytes:  res.ImageBytes,
			IsSVG:  res.Kind == ResourceSVG || res.IsSVG,
		}
		return nil

	case ResourceFont:
		// Fonts are not attached to a single node; the caller that owns the
		// font cache is expected to register FontBytes directly rather than
		// routing through Document.
		return nil

	default:
		return nil
	}
}

// MarkImageLoadFailed installs an errored ImageData on id so layout treats
// it as an empty replaced box rather than retrying the fetch.
func (d *Document) MarkImageLoadFailed(id NodeID) {
	n, ok := d.arena.GetNodeMut(id)
	if !ok {
		return
	}
	d.SnapshotNode(id)
	n.RoleData = ImageData{Error: true}
}
