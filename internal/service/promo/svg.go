package promo

import (
	"bytes"
	"html/template"
	"math"
	"strconv"
)

const (
	wheelSize   = 320
	wheelMargin = 8
	labelInset  = 10
)

var wheelTemplate = template.Must(template.New("wheel").Parse(`<svg xmlns="http://www.w3.org/2000/svg" class="promo-wheel" width="{{.Size}}" height="{{.Size}}" viewBox="0 0 {{.Size}} {{.Size}}">
{{- range .Slices}}
<g class="promo-segment" data-index="{{.Index}}">
<path d="{{.Path}}" fill="{{.Color}}"/>
<text x="{{.LabelX}}" y="{{.LabelY}}" transform="rotate({{.Rotate}} {{$.Center}} {{$.Center}})" text-anchor="end" fill="#4B2E2B" font-weight="bold" font-size="14" font-family="Montserrat, sans-serif">{{.Label}}</text>
</g>
{{- end}}
</svg>`))

type wheelView struct {
	Size   int
	Center string
	Slices []sliceView
}

type sliceView struct {
	Index  int
	Path   string
	Color  string
	LabelX string
	LabelY string
	Rotate string
	Label  string
}

// WheelSVG Колесо в SVG. Поворот колеса прикладывается снаружи через transform
func (s *serv) WheelSVG() (string, error) {
	c := float64(wheelSize) / 2
	r := c - wheelMargin

	view := wheelView{Size: wheelSize, Center: num(c)}
	for _, seg := range s.segments {
		x0, y0 := polar(c, r, seg.StartAngle)
		x1, y1 := polar(c, r, seg.EndAngle)
		largeArc := 0
		if seg.EndAngle-seg.StartAngle > 180 {
			largeArc = 1
		}
		path := "M" + num(c) + "," + num(c) +
			" L" + num(x0) + "," + num(y0) +
			" A" + num(r) + "," + num(r) + " 0 " + strconv.Itoa(largeArc) + ",1 " + num(x1) + "," + num(y1) +
			" Z"

		view.Slices = append(view.Slices, sliceView{
			Index:  seg.Index,
			Path:   path,
			Color:  seg.Color,
			LabelX: num(c + r - labelInset),
			LabelY: num(c + 6),
			Rotate: num((seg.StartAngle + seg.EndAngle) / 2),
			Label:  seg.Label,
		})
	}

	var buf bytes.Buffer
	if err := wheelTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// polar Точка на окружности. Угол по часовой, ось Y вниз
func polar(c, r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return c + r*math.Cos(rad), c + r*math.Sin(rad)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
