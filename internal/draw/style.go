package draw

import (
	"html"
	"strings"

	"github.com/banshee-data/modelboard/internal/geom"
)

// Style holds presentation attributes for geometric shapes. Zero values are
// omitted from the output so the SVG defaults apply.
type Style struct {
	Fill        string
	FillOpacity *float64
	Stroke      string
	StrokeWidth float64
	Dash        string
	Opacity     *float64
	// Round sets round line caps and joins.
	Round  bool
	Filter string
}

// Opacity is a helper for Style.FillOpacity / Style.Opacity literals.
func Opacity(v float64) *float64 { return &v }

// TextStyle holds presentation attributes for labels.
type TextStyle struct {
	Size      float64
	Fill      string
	Anchor    string
	Weight    string
	Opacity   *float64
	Transform string
}

// Text anchors.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

func (s Style) attrs() string {
	var a attrList
	a.add("fill", s.Fill)
	if s.FillOpacity != nil {
		a.add("fill-opacity", geom.FormatCoord(*s.FillOpacity))
	}
	a.add("stroke", s.Stroke)
	if s.StrokeWidth > 0 {
		a.add("stroke-width", geom.FormatCoord(s.StrokeWidth))
	}
	a.add("stroke-dasharray", s.Dash)
	if s.Opacity != nil {
		a.add("opacity", geom.FormatCoord(*s.Opacity))
	}
	if s.Round {
		a.add("stroke-linecap", "round")
		a.add("stroke-linejoin", "round")
	}
	a.add("filter", s.Filter)
	return a.String()
}

func (s TextStyle) attrs() string {
	var a attrList
	if s.Size > 0 {
		a.add("font-size", geom.FormatCoord(s.Size))
	}
	a.add("fill", s.Fill)
	a.add("text-anchor", s.Anchor)
	a.add("font-weight", s.Weight)
	if s.Opacity != nil {
		a.add("opacity", geom.FormatCoord(*s.Opacity))
	}
	a.add("transform", s.Transform)
	return a.String()
}

// attrList builds a space separated attribute string. svgo treats any
// argument containing '=' as raw attributes rather than a style string.
type attrList struct {
	parts []string
}

func (a *attrList) add(name, value string) {
	if value == "" {
		return
	}
	a.parts = append(a.parts, name+`="`+html.EscapeString(value)+`"`)
}

func (a *attrList) String() string {
	return strings.Join(a.parts, " ")
}

// args wraps a non-empty attribute string for svgo's variadic style
// parameter. An empty string would be written as style="".
func args(attrs string) []string {
	if attrs == "" {
		return nil
	}
	return []string{attrs}
}
