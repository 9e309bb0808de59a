package styloadapt

import "sync"

// TrackSizingFunction is one resolved grid track definition. The concrete
// track-sizing vocabulary (fixed length, fr unit, minmax, fit-content, auto)
// lives in the layout package; styloadapt only caches the conversion.
type TrackSizingFunction struct {
	Kind  string // "fixed" | "fr" | "minmax" | "fit-content" | "auto" | "subgrid" | "masonry"
	Value float64
	Min   float64
	Max   float64
}

// LineNameList maps a grid line index to the set of names assigned to it by
// grid-template-{rows,columns}.
type LineNameList map[int][]string

// TaffyStyloStyle adapts a ComputedValues handle to the layout engine's
// expected grid/flex/box style interface, converting and caching the parts
// that are expensive to recompute (grid track lists, area names, line
// names) on first read. Each cache is a one-shot cell: populated once, then
// served from memory for the wrapper's lifetime.
type TaffyStyloStyle struct {
	Values ComputedValues

	once struct {
		rows, cols, autoRows, autoCols, areas, lineNames sync.Once
	}
	rowTracks, colTracks           []TrackSizingFunction
	autoRowTracks, autoColTracks   []TrackSizingFunction
	areaNames                      map[string]GridArea
	lineNames                      LineNameList
}

// GridArea is the resolved row/column span for a named grid-template-areas
// cell.
type GridArea struct {
	RowStart, RowEnd, ColStart, ColEnd int
}

// NewTaffyStyloStyle wraps values for layout consumption.
func NewTaffyStyloStyle(values ComputedValues) *TaffyStyloStyle {
	return &TaffyStyloStyle{Values: values}
}

// GridTemplateRows returns the parsed grid-template-rows track list,
// computing and caching it on first call.
func (s *TaffyStyloStyle) GridTemplateRows() []TrackSizingFunction {
	s.once.rows.Do(func() {
		s.rowTracks = s.parseTrackList("grid-template-rows")
	})
	return s.rowTracks
}

// GridTemplateColumns returns the parsed grid-template-columns track list,
// computing and caching it on first call.
func (s *TaffyStyloStyle) GridTemplateColumns() []TrackSizingFunction {
	s.once.cols.Do(func() {
		s.colTracks = s.parseTrackList("grid-template-columns")
	})
	return s.colTracks
}

// GridAutoRows returns the parsed grid-auto-rows track list.
func (s *TaffyStyloStyle) GridAutoRows() []TrackSizingFunction {
	s.once.autoRows.Do(func() {
		s.autoRowTracks = s.parseTrackList("grid-auto-rows")
	})
	return s.autoRowTracks
}

// GridAutoColumns returns the parsed grid-auto-columns track list.
func (s *TaffyStyloStyle) GridAutoColumns() []TrackSizingFunction {
	s.once.autoCols.Do(func() {
		s.autoColTracks = s.parseTrackList("grid-auto-columns")
	})
	return s.autoColTracks
}

// GridTemplateAreas returns the named-area map parsed from
// grid-template-areas, computing and caching it on first call.
func (s *TaffyStyloStyle) GridTemplateAreas() map[string]GridArea {
	s.once.areas.Do(func() {
		s.areaNames = s.parseAreaNames()
	})
	return s.areaNames
}

// GridLineNames returns the explicit line-name map, computing and caching
// it on first call.
func (s *TaffyStyloStyle) GridLineNames() LineNameList {
	s.once.lineNames.Do(func() {
		s.lineNames = s.parseLineNames()
	})
	return s.lineNames
}

// OverrideTracks replaces the cached row/column track lists directly,
// bypassing parseTrackList, so later GridTemplateRows/GridTemplateColumns
// calls return rows and cols as given. The layout package's subgrid
// preprocessing converts parent tracks on its own and does not call it.
func (s *TaffyStyloStyle) OverrideTracks(rows, cols []TrackSizingFunction) {
	s.once.rows.Do(func() {})
	s.once.cols.Do(func() {})
	s.rowTracks = rows
	s.colTracks = cols
}

func (s *TaffyStyloStyle) parseTrackList(property string) []TrackSizingFunction {
	raw, ok := s.Values.Property(property)
	if !ok {
		return nil
	}
	tracks, _ := raw.([]TrackSizingFunction)
	return tracks
}

func (s *TaffyStyloStyle) parseAreaNames() map[string]GridArea {
	raw, ok := s.Values.Property("grid-template-areas")
	if !ok {
		return nil
	}
	areas, _ := raw.(map[string]GridArea)
	return areas
}

func (s *TaffyStyloStyle) parseLineNames() LineNameList {
	raw, ok := s.Values.Property("grid-line-names")
	if !ok {
		return nil
	}
	names, _ := raw.(LineNameList)
	return names
}
