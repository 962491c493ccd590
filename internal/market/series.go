package market

import (
	"sort"
	"time"
)

// Series 按日期升序排列的日线序列。空序列表示"区间内无数据"，不是错误。
type Series []Bar

// Normalize 返回排序去重后的副本：日期严格递增，重复日期保留首次出现的记录。
func (s Series) Normalize() Series {
	if len(s) == 0 {
		return Series{}
	}
	out := make(Series, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	dedup := out[:0]
	for _, bar := range out {
		if len(dedup) > 0 && dedup[len(dedup)-1].Date.Equal(bar.Date) {
			continue
		}
		dedup = append(dedup, bar)
	}
	return dedup
}

// Sorted 检查日期是否严格递增。
func (s Series) Sorted() bool {
	for i := 1; i < len(s); i++ {
		if !s[i-1].Date.Before(s[i].Date) {
			return false
		}
	}
	return true
}

// Closes 提取收盘价列。
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, bar := range s {
		out[i] = bar.Close
	}
	return out
}

// Dates 提取日期列。
func (s Series) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, bar := range s {
		out[i] = bar.Date
	}
	return out
}

// Span 返回首尾日期间隔的自然日数；不足两根返回 0。
func (s Series) Span() int {
	if len(s) < 2 {
		return 0
	}
	return int(s[len(s)-1].Date.Sub(s[0].Date) / (24 * time.Hour))
}
