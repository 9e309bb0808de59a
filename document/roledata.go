package document

// ImageData is role data for an <img> or background-image raster, installed
// by LoadResource once the asynchronous loader delivers bytes.
type ImageData struct {
	Width, Height int
	Bytes         []byte // decoded RGBA, or raw SVG source when IsSVG
	IsSVG         bool
	Error         bool // resource load failed; render as empty replaced box
}

// CanvasData is role data for a <canvas> element.
type CanvasData struct {
	Width, Height int
}

// TableContext holds the derived column/row-group/caption structure used by
// table layout.
type TableContext struct {
	Columns    []TableColumn
	RowGroups  []NodeID
	Captions   []NodeID
}

// TableColumn describes one resolved table column.
type TableColumn struct {
	SpecifiedWidth *float64
}

// TextInputState is role data for a text-input editor control.
type TextInputState struct {
	Value        string
	CursorPos    int
	SelectionEnd int
}

// CheckboxState is role data for <input type=checkbox|radio>.
type CheckboxState struct {
	Checked bool
	Value   string
}

// FileInputState is role data for <input type=file>.
type FileInputState struct {
	SelectedFiles []SelectedFile
}

// SelectedFile names one file chosen through a file input.
type SelectedFile struct {
	Name string
	Data []byte
}

// StylesheetHandle is role data recorded on the owning node once a
// stylesheet has been attached via AddStylesheetForNode.
type StylesheetHandle struct {
	Index int // position within Document.stylesheets
}

// InlineLayoutData is role data for an inline root. Buffer holds the root's
// collected text content; the layout package's inline-root construction
// stores it as the whitespace-collapsed string. The field is typed any so
// document imports neither layout nor text.
type InlineLayoutData struct {
	Buffer any
}

// ListItemData is role data for a list item with list-style-position:
// outside; MarkerBuffer is the measured marker text buffer.
type ListItemData struct {
	MarkerText   string
	MarkerBuffer any
}
