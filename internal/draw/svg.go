package draw

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/banshee-data/modelboard/internal/geom"

	svg "github.com/ajstarks/svgo"
)

// WriteSVG encodes the drawing as a standalone SVG document whose viewBox
// is the drawing's virtual coordinate space.
func (d *Drawing) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(d.Width, d.Height, 0, 0, d.Width, d.Height)
	if d.Title != "" {
		canvas.Title(d.Title)
	}
	if len(d.Gradients) > 0 || len(d.Glows) > 0 {
		canvas.Def()
		for _, g := range d.Gradients {
			stops := make([]svg.Offcolor, len(g.Stops))
			for i, s := range g.Stops {
				stops[i] = svg.Offcolor{Offset: s.Offset, Color: s.Color, Opacity: s.Opacity}
			}
			canvas.LinearGradient(g.ID, 0, 0, 0, 100, stops)
		}
		for _, g := range d.Glows {
			canvas.Filter(g.ID)
			canvas.FeGaussianBlur(svg.Filterspec{Result: "blur"}, g.StdDev, g.StdDev)
			canvas.FeMerge([]string{"blur", "SourceGraphic"})
			canvas.Fend()
		}
		canvas.DefEnd()
	}
	for _, s := range d.Shapes {
		if err := encode(canvas, s); err != nil {
			return err
		}
	}
	canvas.End()
	return ew.err
}

// SVG returns the encoded document.
func (d *Drawing) SVG() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteSVG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(c *svg.SVG, s Shape) error {
	switch v := s.(type) {
	case Rect:
		c.Path(rectPath(v.X, v.Y, v.W, v.H, v.Radius), args(v.Style.attrs())...)
	case Line:
		c.Path(pointsPath([]geom.Point{{X: v.X1, Y: v.Y1}, {X: v.X2, Y: v.Y2}}, false), args(v.Style.attrs())...)
	case Polyline:
		if len(v.Points) == 0 {
			return nil
		}
		st := v.Style
		if st.Fill == "" {
			st.Fill = "none"
		}
		c.Path(pointsPath(v.Points, false), args(st.attrs())...)
	case Polygon:
		if len(v.Points) == 0 {
			return nil
		}
		c.Path(pointsPath(v.Points, true), args(v.Style.attrs())...)
	case Path:
		c.Path(v.D, args(v.Style.attrs())...)
	case Circle:
		c.Path(circlePath(v.CX, v.CY, v.R), args(v.Style.attrs())...)
	case Text:
		c.Text(round(v.X), round(v.Y), v.Content, args(v.Style.attrs())...)
	case Group:
		c.Gtransform(v.Transform)
		for _, child := range v.Shapes {
			if err := encode(c, child); err != nil {
				return err
			}
		}
		c.Gend()
	default:
		return fmt.Errorf("draw: unsupported shape %T", s)
	}
	return nil
}

func round(v float64) int {
	return int(math.Round(v))
}

func pointsPath(pts []geom.Point, closed bool) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(geom.FormatCoord(p.X))
		b.WriteByte(' ')
		b.WriteString(geom.FormatCoord(p.Y))
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func rectPath(x, y, w, h, r float64) string {
	f := geom.FormatCoord
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return fmt.Sprintf("M %s %s H %s V %s H %s Z", f(x), f(y), f(x+w), f(y+h), f(x))
	}
	arc := "A " + f(r) + " " + f(r) + " 0 0 1 "
	return fmt.Sprintf("M %s %s H %s %s%s %s V %s %s%s %s H %s %s%s %s V %s %s%s %s Z",
		f(x+r), f(y),
		f(x+w-r), arc, f(x+w), f(y+r),
		f(y+h-r), arc, f(x+w-r), f(y+h),
		f(x+r), arc, f(x), f(y+h-r),
		f(y+r), arc, f(x+r), f(y),
	)
}

func circlePath(cx, cy, r float64) string {
	f := geom.FormatCoord
	return fmt.Sprintf("M %s %s A %s %s 0 1 0 %s %s A %s %s 0 1 0 %s %s Z",
		f(cx-r), f(cy),
		f(r), f(r), f(cx+r), f(cy),
		f(r), f(r), f(cx-r), f(cy),
	)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
