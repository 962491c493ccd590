package market

import "time"

// Bar 一根日线行情记录，复权方式由拉取时的 adjust 参数决定。
type Bar struct {
	Date   time.Time          `json:"date"`
	Open   float64            `json:"open"`
	High   float64            `json:"high"`
	Low    float64            `json:"low"`
	Close  float64            `json:"close"`
	Volume float64            `json:"volume"`
	Amount float64            `json:"amount,omitempty"`
	Extra  map[string]float64 `json:"extra,omitempty"` // 振幅/涨跌幅/涨跌额/换手率等透传字段
}
