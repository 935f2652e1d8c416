package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"coax/grid"
	"coax/model"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	PotentialPlot    = "potential.png"
	EFieldPlot       = "efield.png"
	CrossSectionPlot = "cross_section.png"

	plotSize = 6 * vg.Inch
)

// PlotSink 把电势和电场大小画成热力图，一维截面画成折线
type PlotSink struct {
	Dir string
}

func NewPlotSink(dir string) *PlotSink {
	return &PlotSink{Dir: dir}
}

func (s *PlotSink) Export(res *model.Result) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("sink: create output dir: %w", err)
	}
	spacing := 1 / float64(res.Resolution)

	if err := s.saveHeatMap(PotentialPlot, "Potential (V)", grid.FieldFromRows(res.Potential).Dense(), spacing); err != nil {
		return err
	}
	if err := s.saveHeatMap(EFieldPlot, "|E| (V/cm)", grid.FieldFromRows(res.E).Dense(), spacing); err != nil {
		return err
	}
	if err := s.saveCrossSection(res.CrossSection, spacing); err != nil {
		return err
	}

	fields := log.Fields{"dir": s.Dir}
	if len(res.CrossSection) > 0 {
		fields["crossSectionMax"] = floats.Max(res.CrossSection)
	}
	log.WithFields(fields).Info("图像已写入")
	return nil
}

func (s *PlotSink) saveHeatMap(name, title string, m *mat.Dense, spacing float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (cm)"
	p.Y.Label.Text = "y (cm)"

	h := plotter.NewHeatMap(gridXYZ{m: m, spacing: spacing}, palette.Heat(64, 1))
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}
	p.Add(h)

	path := filepath.Join(s.Dir, name)
	if err := p.Save(plotSize, plotSize, path); err != nil {
		return fmt.Errorf("sink: save %s: %w", path, err)
	}
	return nil
}

func (s *PlotSink) saveCrossSection(values []float64, spacing float64) error {
	p := plot.New()
	p.Title.Text = "1D cross-section"
	p.X.Label.Text = "position (cm)"
	p.Y.Label.Text = "Potential (V)"

	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i) * spacing
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("sink: cross-section: %w", err)
	}
	p.Add(line)

	path := filepath.Join(s.Dir, CrossSectionPlot)
	if err := p.Save(plotSize, plotSize/2, path); err != nil {
		return fmt.Errorf("sink: save %s: %w", path, err)
	}
	return nil
}

// gridXYZ 把矩阵适配成 plotter.GridXYZ，第 0 行画在最上方
type gridXYZ struct {
	m       mat.Matrix
	spacing float64
}

func (g gridXYZ) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g gridXYZ) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g gridXYZ) X(c int) float64 {
	return float64(c) * g.spacing
}

func (g gridXYZ) Y(r int) float64 {
	return float64(r) * g.spacing
}
