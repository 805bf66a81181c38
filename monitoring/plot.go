package monitoring

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotRenderer 将每次评估绘制为 PNG: 实际数据散点 + 回归直线
type PlotRenderer struct {
	dir    string
	width  vg.Length
	height vg.Length
	logger *zap.Logger
}

// NewPlotRenderer 创建绘图器, 图片写入 dir
func NewPlotRenderer(dir string, logger *zap.Logger) *PlotRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlotRenderer{
		dir:    dir,
		width:  6 * vg.Inch,
		height: 4 * vg.Inch,
		logger: logger,
	}
}

// Path 返回 label 对应的图片路径
func (r *PlotRenderer) Path(label string) string {
	return filepath.Join(r.dir, label+".png")
}

// Render 绘制并保存图片
func (r *PlotRenderer) Render(label string, mileage, actual, estimated []float64) error {
	if len(mileage) != len(actual) || len(mileage) != len(estimated) {
		return fmt.Errorf("plot %s: length mismatch", label)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title(label)
	p.X.Label.Text = "Mileage (km)"
	p.Y.Label.Text = "Price"

	pts := make(plotter.XYs, len(mileage))
	linePts := make(plotter.XYs, len(mileage))
	for i := range mileage {
		pts[i] = plotter.XY{X: mileage[i], Y: actual[i]}
		linePts[i] = plotter.XY{X: mileage[i], Y: estimated[i]}
	}
	sort.Slice(linePts, func(i, j int) bool { return linePts[i].X < linePts[j].X })

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.Color = color.RGBA{B: 255, A: 255}
	s.Shape = draw.CircleGlyph{}

	l, err := plotter.NewLine(linePts)
	if err != nil {
		return err
	}
	l.Color = color.RGBA{R: 255, A: 255}
	l.LineStyle.Width = vg.Points(2)

	p.Add(s, l)
	p.Legend.Add("Actual Data", s)
	p.Legend.Add("Regression Line", l)
	p.Legend.Top = true

	path := r.Path(label)
	if err := p.Save(r.width, r.height, path); err != nil {
		return err
	}
	r.logger.Debug("plot saved", zap.String("path", path))
	return nil
}

func title(label string) string {
	if n, ok := strings.CutPrefix(label, "step_"); ok {
		return "Epoch " + n
	}
	return "Final (raw mileage)"
}
