package data

import "context"

// DailyRequest 描述一次日线行情请求。Code 为纯数字代码（已去掉交易所前缀）。
type DailyRequest struct {
	Code   string
	Start  string // YYYYMMDD
	End    string // YYYYMMDD
	Adjust string // "qfq"=前复权 "hfq"=后复权 ""=不复权
}

// RawTable 行情源返回的原始表格，列名保持源端叫法（中文），由 Normalize 统一到规范字段。
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Empty 判断是否没有任何数据行。
func (t RawTable) Empty() bool { return len(t.Rows) == 0 }

// Source 统一不同行情源的日线拉取行为。
type Source interface {
	FetchDaily(ctx context.Context, req DailyRequest) (RawTable, error)
	Name() string
}
