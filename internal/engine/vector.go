package engine

import "math"

// 本包的序列运算沿用列式语义：未定义值用 NaN 表示，
// 是否坐实为 0 由调用方显式决定，避免隐式传播。

// pctChange 逐期涨跌幅，首期未定义（NaN）。
func pctChange(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		if i == 0 || xs[i-1] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = xs[i]/xs[i-1] - 1
	}
	return out
}

// shiftPositions 信号后移一期得到持仓：position[0]=0，position[t]=signal[t-1]。
func shiftPositions(signals []int) []int {
	out := make([]int, len(signals))
	for i := 1; i < len(signals); i++ {
		out[i] = signals[i-1]
	}
	return out
}

// cumMax 滚动历史最大值。
func cumMax(xs []float64) []float64 {
	out := make([]float64, len(xs))
	best := math.Inf(-1)
	for i, x := range xs {
		if x > best {
			best = x
		}
		out[i] = best
	}
	return out
}

// mean 算术平均；空切片返回 0。
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd 样本标准差（ddof=1）；样本数不足返回 0。
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
