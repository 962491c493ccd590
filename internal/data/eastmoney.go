package data

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quantmon/internal/pkg/symbol"

	"github.com/tidwall/gjson"
)

// 东方财富日线接口的列序是固定的，按 fields2 的顺序返回。
var eastMoneyColumns = []string{
	"日期", "开盘", "收盘", "最高", "最低", "成交量", "成交额", "振幅", "涨跌幅", "涨跌额", "换手率",
}

// EastMoneySource 基于东方财富 push2his REST /api/qt/stock/kline/get。
type EastMoneySource struct {
	baseURL string
	client  *http.Client
}

func NewEastMoneySource(base string, timeout time.Duration) *EastMoneySource {
	if base == "" {
		base = "https://push2his.eastmoney.com"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &EastMoneySource{
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

func (e *EastMoneySource) Name() string { return "eastmoney" }

func (e *EastMoneySource) FetchDaily(ctx context.Context, req DailyRequest) (RawTable, error) {
	if req.Code == "" {
		return RawTable{}, fmt.Errorf("code 不能为空")
	}
	u, err := url.Parse(e.baseURL)
	if err != nil {
		return RawTable{}, err
	}
	u.Path = "/api/qt/stock/kline/get"
	q := u.Query()
	q.Set("secid", symbol.SecID(req.Code))
	q.Set("klt", "101") // 日线
	q.Set("fqt", adjustFlag(req.Adjust))
	q.Set("beg", req.Start)
	q.Set("end", req.End)
	q.Set("fields1", "f1,f2,f3,f4,f5,f6")
	q.Set("fields2", "f51,f52,f53,f54,f55,f56,f57,f58,f59,f60,f61")
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return RawTable{}, err
	}
	resp, err := e.client.Do(httpReq)
	if err != nil {
		return RawTable{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return RawTable{}, fmt.Errorf("eastmoney 返回状态码 %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawTable{}, err
	}
	if !gjson.ValidBytes(body) {
		return RawTable{}, fmt.Errorf("eastmoney 返回非法 JSON")
	}
	klines := gjson.GetBytes(body, "data.klines")
	if !klines.Exists() {
		// data 为 null 表示区间内无数据
		return RawTable{Columns: eastMoneyColumns}, nil
	}
	table := RawTable{Columns: eastMoneyColumns}
	klines.ForEach(func(_, line gjson.Result) bool {
		fields := strings.Split(line.String(), ",")
		if len(fields) < len(eastMoneyColumns) {
			return true
		}
		table.Rows = append(table.Rows, fields[:len(eastMoneyColumns)])
		return true
	})
	return table, nil
}

// adjustFlag 映射复权方式到接口参数：不复权 0、前复权 1、后复权 2。
func adjustFlag(adjust string) string {
	switch adjust {
	case "qfq":
		return "1"
	case "hfq":
		return "2"
	default:
		return "0"
	}
}
