package engine

import (
	"math"
	"time"
)

const (
	tradingDaysPerYear = 252
	annualRiskFree     = 0.03
	daysPerYear        = 365.25
)

// computeMetrics 按固定公式从完整序列推导五项指标。
// 退化输入（单日区间、零方差、零交易）一律回落为 0，不产生 NaN。
func computeMetrics(dates []time.Time, equity, strategyReturns []float64, signals []int, initialCapital float64) Metrics {
	var m Metrics
	n := len(equity)
	if n == 0 {
		return m
	}

	totalReturn := equity[n-1]/initialCapital - 1
	days := int(dates[n-1].Sub(dates[0]) / (24 * time.Hour))
	if days > 0 {
		m.AnnualizedReturn = math.Pow(1+totalReturn, daysPerYear/float64(days)) - 1
	}

	rollingMax := cumMax(equity)
	for t := 0; t < n; t++ {
		dd := (equity[t] - rollingMax[t]) / rollingMax[t]
		if dd < m.MaxDrawdown {
			m.MaxDrawdown = dd
		}
	}

	rf := annualRiskFree / tradingDaysPerYear
	excess := make([]float64, n)
	for t, r := range strategyReturns {
		excess[t] = r - rf
	}
	if std := sampleStd(excess); std != 0 {
		m.SharpeRatio = mean(excess) / std * math.Sqrt(tradingDaysPerYear)
	}

	var trades, wins int
	for _, r := range strategyReturns {
		if r != 0 {
			trades++
			if r > 0 {
				wins++
			}
		}
	}
	if trades > 0 {
		m.WinRate = float64(wins) / float64(trades)
	}

	// 有信号（非观望）的期数，不是方向切换次数
	for _, sig := range signals {
		if sig != 0 {
			m.TotalTrades++
		}
	}
	return m
}
