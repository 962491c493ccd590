package strategy

import (
	"fmt"

	"github.com/markcheno/go-talib"

	"quantmon/internal/market"
)

// EMACross 指数均线交叉，参数含义与 SMACross 相同。
type EMACross struct{}

type emaParams struct {
	ShortWindow int `mapstructure:"short_window"`
	LongWindow  int `mapstructure:"long_window"`
}

func (EMACross) ComputeSignals(series market.Series, params map[string]any) ([]int, error) {
	p := emaParams{ShortWindow: 12, LongWindow: 26}
	if err := DecodeParams(params, &p); err != nil {
		return nil, fmt.Errorf("解析 EMA 参数失败: %w", err)
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
	if len(closes) < warmup {
		return signals, nil
	}
	short := talib.Ema(closes, p.ShortWindow)
	long := talib.Ema(closes, p.LongWindow)
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
