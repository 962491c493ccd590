// Package convert 提供行情字段的数值解析工具。
package convert

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseFloat 用 decimal 解析行情接口返回的数字字符串，解析失败返回 (0, false)。
// 行情源偶尔返回 "-" 表示缺失，视为解析失败。
func ParseFloat(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" {
		return 0, false
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// ToFloat64 宽松转换，常用于 JSON 解出的 any 值。
func ToFloat64(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, _ := ParseFloat(t)
		return f
	default:
		return 0
	}
}
