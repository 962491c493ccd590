package strategy

import (
	"testing"
	"time"

	"quantmon/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesFromCloses(t *testing.T, closes ...float64) market.Series {
	t.Helper()
	start, err := time.ParseInLocation("2006-01-02", "2023-01-03", time.UTC)
	require.NoError(t, err)
	series := make(market.Series, len(closes))
	for i, c := range closes {
		series[i] = market.Bar{Date: start.AddDate(0, 0, i), Close: c}
	}
	return series
}

func TestSMACrossSignals(t *testing.T) {
	// 先跌后涨：短均线先低于、后高于长均线
	series := seriesFromCloses(t, 10, 9, 8, 7, 6, 7, 9, 12, 15, 18)
	signals, err := SMACross{}.ComputeSignals(series, map[string]any{
		"short_window": 2,
		"long_window":  4,
	})
	require.NoError(t, err)
	require.Len(t, signals, len(series))

	// 长窗口填满之前观望
	for i := 0; i < 3; i++ {
		assert.Zero(t, signals[i], "期 %d", i)
	}
	// 下跌段短均线在下方
	assert.Equal(t, -1, signals[3])
	assert.Equal(t, -1, signals[4])
	// 反弹后短均线上穿
	assert.Equal(t, 1, signals[len(signals)-1])
}

func TestSMACrossDefaultWindows(t *testing.T) {
	// 序列短于默认长窗口 50，全程观望
	series := seriesFromCloses(t, 10, 11, 12, 13, 14)
	signals, err := SMACross{}.ComputeSignals(series, nil)
	require.NoError(t, err)
	require.Len(t, signals, 5)
	for _, sig := range signals {
		assert.Zero(t, sig)
	}
}

func TestSMACrossRejectsBadWindows(t *testing.T) {
	series := seriesFromCloses(t, 10, 11)
	_, err := SMACross{}.ComputeSignals(series, map[string]any{"short_window": 0})
	assert.Error(t, err)
}

func TestSMACrossAcceptsJSONNumbers(t *testing.T) {
	// HTTP 层解出的参数是 float64，宽松解码要能落到 int
	series := seriesFromCloses(t, 10, 9, 8, 9, 10, 11)
	signals, err := SMACross{}.ComputeSignals(series, map[string]any{
		"short_window": float64(2),
		"long_window":  float64(3),
	})
	require.NoError(t, err)
	require.Len(t, signals, 6)
	assert.Equal(t, 1, signals[len(signals)-1])
}

func TestEMACrossWarmup(t *testing.T) {
	series := seriesFromCloses(t, 10, 11, 12)
	signals, err := EMACross{}.ComputeSignals(series, nil)
	require.NoError(t, err)
	for _, sig := range signals {
		assert.Zero(t, sig)
	}
}

func TestEMACrossSignals(t *testing.T) {
	series := seriesFromCloses(t, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1)
	signals, err := EMACross{}.ComputeSignals(series, map[string]any{
		"short_window": 2,
		"long_window":  4,
	})
	require.NoError(t, err)
	// 单边下跌，短均线始终在长均线下方
	assert.Equal(t, -1, signals[len(signals)-1])
}

func TestRSIThresholdSignals(t *testing.T) {
	// 连续上涨把 RSI 顶满，随后连续下跌砸穿下界
	closes := []float64{10, 11, 12, 13, 14, 15, 14, 13, 12, 11, 10, 9}
	series := seriesFromCloses(t, closes...)
	signals, err := RSIThreshold{}.ComputeSignals(series, map[string]any{
		"period":     3,
		"buy_below":  30,
		"sell_above": 70,
	})
	require.NoError(t, err)
	require.Len(t, signals, len(closes))
	assert.Zero(t, signals[0])
	assert.Equal(t, -1, signals[4])
	assert.Equal(t, 1, signals[len(signals)-1])
}

func TestRSIThresholdRejectsInvertedBounds(t *testing.T) {
	series := seriesFromCloses(t, 10, 11)
	_, err := RSIThreshold{}.ComputeSignals(series, map[string]any{
		"buy_below":  70,
		"sell_above": 30,
	})
	assert.Error(t, err)
}

func TestDecodeParamsWeakTyping(t *testing.T) {
	var p struct {
		Window int `mapstructure:"window"`
	}
	require.NoError(t, DecodeParams(map[string]any{"window": float64(20)}, &p))
	assert.Equal(t, 20, p.Window)
}
