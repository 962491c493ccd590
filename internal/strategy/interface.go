// Package strategy 定义信号策略能力与注册表。
package strategy

import (
	"github.com/mitchellh/mapstructure"

	"quantmon/internal/market"
)

// Strategy 把一份日线序列与参数映射成逐期信号：1 做多、-1 做空、0 观望。
// 实现必须是纯函数：不产生副作用，输出与输入序列逐期对齐。
type Strategy interface {
	ComputeSignals(series market.Series, params map[string]any) ([]int, error)
}

// DecodeParams 把 JSON 解出的参数映射宽松解码到类型化结构，
// 数字类型不匹配（float64 -> int）时自动转换。
func DecodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}
