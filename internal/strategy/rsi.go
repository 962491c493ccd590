package strategy

import (
	"fmt"

	"github.com/markcheno/go-talib"

	"quantmon/internal/market"
)

// RSIThreshold 超卖做多、超买做空的反转策略。
type RSIThreshold struct{}

type rsiParams struct {
	Period    int     `mapstructure:"period"`
	BuyBelow  float64 `mapstructure:"buy_below"`
	SellAbove float64 `mapstructure:"sell_above"`
}

func (RSIThreshold) ComputeSignals(series market.Series, params map[string]any) ([]int, error) {
	p := rsiParams{Period: 14, BuyBelow: 30, SellAbove: 70}
	if err := DecodeParams(params, &p); err != nil {
		return nil, fmt.Errorf("解析 RSI 参数失败: %w", err)
	}
	if p.Period < 2 {
		return nil, fmt.Errorf("period 必须大于 1: %d", p.Period)
	}
	if p.BuyBelow >= p.SellAbove {
		return nil, fmt.Errorf("buy_below 必须小于 sell_above: %.2f >= %.2f", p.BuyBelow, p.SellAbove)
	}
	closes := series.Closes()
	signals := make([]int, len(closes))
	if len(closes) <= p.Period {
		return signals, nil
	}
	rsi := talib.Rsi(closes, p.Period)
	for t := p.Period; t < len(closes); t++ {
		switch {
		case rsi[t] < p.BuyBelow:
			signals[t] = 1
		case rsi[t] > p.SellAbove:
			signals[t] = -1
		}
	}
	return signals, nil
}
