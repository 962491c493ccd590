package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// backtestSchema 在绑定前整体校验请求体，避免半合法参数进入核心链路。
const backtestSchema = `{
  "type": "object",
  "required": ["symbol", "start_date", "end_date", "strategy_name"],
  "properties": {
    "symbol": {"type": "string", "pattern": "^[A-Za-z]{0,2}[0-9]{6}$"},
    "start_date": {"type": "string", "pattern": "^[0-9]{8}$"},
    "end_date": {"type": "string", "pattern": "^[0-9]{8}$"},
    "adjust": {"enum": ["qfq", "hfq", ""]},
    "initial_capital": {"type": "number", "exclusiveMinimum": 0},
    "strategy_name": {"type": "string", "minLength": 1},
    "parameters": {"type": "object"}
  },
  "additionalProperties": false
}`

func compileBacktestSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("backtest.json", strings.NewReader(backtestSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("backtest.json")
}

// validateAndBind 先按 schema 校验原始 JSON，通过后再反序列化到目标结构。
func validateAndBind(schema *jsonschema.Schema, body []byte, out any) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("请求体不是合法 JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("请求体校验失败: %w", err)
	}
	return json.Unmarshal(body, out)
}
