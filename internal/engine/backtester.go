// Package engine 实现向量化回测：信号 -> 滞后持仓 -> 收益 -> 资金曲线 -> 指标。
package engine

import (
	"fmt"
	"math"
	"time"

	"quantmon/internal/logger"
	"quantmon/internal/market"
	"quantmon/internal/strategy"
)

// DefaultInitialCapital 初始资金默认值。
const DefaultInitialCapital = 100000.0

// Metrics 一次回测的五项汇总指标，产出后不再修改。
type Metrics struct {
	AnnualizedReturn float64 `json:"annualized_return"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	WinRate          float64 `json:"win_rate"`
	TotalTrades      int     `json:"total_trades"`
}

// EquityPoint 资金曲线上的一个点。
type EquityPoint struct {
	Date           time.Time `json:"date"`
	Equity         float64   `json:"equity"`
	StrategyReturn float64   `json:"strategy_return"`
}

// SignalPoint 每期的原始信号与实际持仓。
type SignalPoint struct {
	Date     time.Time `json:"date"`
	Signal   int       `json:"signal"`
	Position int       `json:"position"`
}

// Result 一次回测的完整产出。
type Result struct {
	Metrics     Metrics       `json:"metrics"`
	EquityCurve []EquityPoint `json:"equity_curve"`
	Signals     []SignalPoint `json:"signals"`
}

// Backtester 对一份不可变的日线序列执行回测。每次请求构造一个实例，
// 不跨请求共享，除缓存自身最近一次结果外不持有状态。
type Backtester struct {
	series         market.Series
	initialCapital float64
	last           *Result
}

func New(series market.Series, initialCapital float64) *Backtester {
	if initialCapital <= 0 {
		initialCapital = DefaultInitialCapital
	}
	return &Backtester{series: series, initialCapital: initialCapital}
}

// Run 调用策略生成信号并完成整条回测链路。
//
// 持仓 = 前一期信号（首期为 0），保证任何一期的持仓只依赖该期之前的信息。
// 首期市场收益未定义，这里坐实为 0（见 DESIGN.md 的取舍说明），
// 因此首期策略收益恒为 0，资金曲线从初始资金起步。
func (b *Backtester) Run(strat strategy.Strategy, params map[string]any) (*Result, error) {
	if len(b.series) == 0 {
		return nil, fmt.Errorf("空序列无法回测")
	}
	signals, err := strat.ComputeSignals(b.series, params)
	if err != nil {
		return nil, fmt.Errorf("策略信号计算失败: %w", err)
	}
	if len(signals) != len(b.series) {
		return nil, fmt.Errorf("信号长度 %d 与序列长度 %d 不一致", len(signals), len(b.series))
	}

	n := len(b.series)
	positions := shiftPositions(signals)
	marketReturns := pctChange(b.series.Closes())

	strategyReturns := make([]float64, n)
	for t := 0; t < n; t++ {
		mr := marketReturns[t]
		if math.IsNaN(mr) {
			mr = 0
		}
		strategyReturns[t] = float64(positions[t]) * mr
	}

	equity := make([]float64, n)
	cum := 1.0
	for t := 0; t < n; t++ {
		cum *= 1 + strategyReturns[t]
		equity[t] = b.initialCapital * cum
	}

	metrics := computeMetrics(b.series.Dates(), equity, strategyReturns, signals, b.initialCapital)

	result := &Result{Metrics: metrics}
	result.EquityCurve = make([]EquityPoint, n)
	result.Signals = make([]SignalPoint, n)
	for t, bar := range b.series {
		result.EquityCurve[t] = EquityPoint{Date: bar.Date, Equity: equity[t], StrategyReturn: strategyReturns[t]}
		result.Signals[t] = SignalPoint{Date: bar.Date, Signal: signals[t], Position: positions[t]}
	}
	b.last = result
	logger.Infof("回测完成：%d 期，年化 %.4f，最大回撤 %.4f，夏普 %.4f",
		n, metrics.AnnualizedReturn, metrics.MaxDrawdown, metrics.SharpeRatio)
	return result, nil
}

// Results 返回最近一次 Run 的结果；尚未运行时为 nil。
func (b *Backtester) Results() *Result {
	return b.last
}
