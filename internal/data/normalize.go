package data

import (
	"fmt"
	"time"

	"quantmon/internal/logger"
	"quantmon/internal/market"
	"quantmon/internal/pkg/convert"
)

// renameMap 行情源中文列名到规范字段的映射。
var renameMap = map[string]string{
	"日期":  "date",
	"开盘":  "open",
	"收盘":  "close",
	"最高":  "high",
	"最低":  "low",
	"成交量": "volume",
	"成交额": "amount",
	"振幅":  "amplitude",
	"涨跌幅": "pct_chg",
	"涨跌额": "change",
	"换手率": "turnover",
}

// extraFields 不进入 Bar 固定字段、按规范名透传的列。
var extraFields = map[string]bool{
	"amplitude": true,
	"pct_chg":   true,
	"change":    true,
	"turnover":  true,
}

const dateLayout = "2006-01-02"

// Normalize 把原始表格转换为规范化日线序列：列名重命名、日期列解析、
// 排序去重。找不到 date 列时退回用第一列当日期列。
func Normalize(table RawTable) (market.Series, error) {
	if table.Empty() {
		return market.Series{}, nil
	}
	cols := make([]string, len(table.Columns))
	dateIdx := -1
	for i, c := range table.Columns {
		name := c
		if renamed, ok := renameMap[c]; ok {
			name = renamed
		}
		cols[i] = name
		if name == "date" && dateIdx < 0 {
			dateIdx = i
		}
	}
	if dateIdx < 0 {
		logger.Warnf("未找到 date 列，按第一列处理，原始列名: %v", table.Columns)
		dateIdx = 0
		cols[dateIdx] = "date"
	}

	series := make(market.Series, 0, len(table.Rows))
	for _, row := range table.Rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("行宽 %d 与列数 %d 不一致", len(row), len(cols))
		}
		date, err := time.ParseInLocation(dateLayout, row[dateIdx], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("解析日期失败 (%s): %w", row[dateIdx], err)
		}
		bar := market.Bar{Date: date}
		for i, cell := range row {
			if i == dateIdx {
				continue
			}
			val, ok := convert.ParseFloat(cell)
			if !ok {
				continue
			}
			switch cols[i] {
			case "open":
				bar.Open = val
			case "close":
				bar.Close = val
			case "high":
				bar.High = val
			case "low":
				bar.Low = val
			case "volume":
				bar.Volume = val
			case "amount":
				bar.Amount = val
			default:
				if extraFields[cols[i]] {
					if bar.Extra == nil {
						bar.Extra = make(map[string]float64)
					}
					bar.Extra[cols[i]] = val
				}
			}
		}
		series = append(series, bar)
	}
	return series.Normalize(), nil
}
