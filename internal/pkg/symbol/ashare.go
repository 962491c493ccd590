// Package symbol 处理 A 股代码的清洗与行情源编码。
package symbol

import "strings"

// Clean 去掉交易所前缀等非数字字符，如 "sh600000" -> "600000"。
func Clean(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SecID 返回东方财富行情接口使用的 secid：沪市前缀 "1."，深市前缀 "0."。
// 6/9 开头按沪市处理（主板/科创板/B 股），其余按深市。
func SecID(code string) string {
	if code == "" {
		return ""
	}
	switch code[0] {
	case '6', '9':
		return "1." + code
	default:
		return "0." + code
	}
}
