// Package visual 把回测产出渲染成网页图表。
package visual

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"quantmon/internal/engine"
)

const dateLabelLayout = "2006-01-02"

// RenderEquityCurve 把资金曲线渲染成可独立打开的 HTML 页面。
func RenderEquityCurve(w io.Writer, title string, curve []engine.EquityPoint) error {
	if len(curve) == 0 {
		return fmt.Errorf("资金曲线为空")
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1080px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "策略资金曲线"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
	)
	dates := make([]string, len(curve))
	values := make([]opts.LineData, len(curve))
	for i, pt := range curve {
		dates[i] = pt.Date.Format(dateLabelLayout)
		values[i] = opts.LineData{Value: pt.Equity}
	}
	line.SetXAxis(dates)
	line.AddSeries("equity", values,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false), Smooth: opts.Bool(true)}),
	)
	return line.Render(w)
}
