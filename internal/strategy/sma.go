package strategy

import (
	"fmt"

	"github.com/markcheno/go-talib"

	"quantmon/internal/market"
)

// SMACross 简单均线交叉：短均线上穿做多、下穿做空。
// 长窗口填满之前视为观望。
type SMACross struct{}

type smaParams struct {
	ShortWindow int `mapstructure:"short_window"`
	LongWindow  int `mapstructure:"long_window"`
}

func (SMACross) ComputeSignals(series market.Series, params map[string]any) ([]int, error) {
	p := smaParams{ShortWindow: 20, LongWindow: 50}
	if err := DecodeParams(params, &p); err != nil {
		return nil, fmt.Errorf("解析 SMA 参数失败: %w", err)
	}
	if p.ShortWindow < 1 || p.LongWindow < 1 {
		return nil, fmt.Errorf("窗口必须为正数: short=%d long=%d", p.ShortWindow, p.LongWindow)
	}
	closes := series.Closes()
	signals := make([]int, len(closes))
	warmup := p.ShortWindow
	if p.LongWindow > warmup {
		warmup = p.LongWindow
	}
	// 长窗口都填不满时全程观望
	if len(closes) < warmup {
		return signals, nil
	}
	short := talib.Sma(closes, p.ShortWindow)
	long := talib.Sma(closes, p.LongWindow)
	for t := warmup - 1; t < len(closes); t++ {
		switch {
		case short[t] > long[t]:
			signals[t] = 1
		case short[t] < long[t]:
			signals[t] = -1
		}
	}
	return signals, nil
}
