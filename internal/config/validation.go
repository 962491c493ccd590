package config

import (
	"fmt"
	"strings"
)

// validate 对配置进行基础校验。
func validate(c *Config) error {
	if err := c.Data.validate(); err != nil {
		return err
	}
	if err := c.Backtest.validate(); err != nil {
		return err
	}
	return nil
}

func (d *DataConfig) validate() error {
	if !strings.HasPrefix(d.VendorBaseURL, "http://") && !strings.HasPrefix(d.VendorBaseURL, "https://") {
		return fmt.Errorf("data.vendor_base_url 必须是 http(s) 地址: %s", d.VendorBaseURL)
	}
	if d.RetryMaxSeconds < d.RetryBaseSeconds {
		return fmt.Errorf("data.retry_max_seconds 不能小于 retry_base_seconds")
	}
	if d.StoreEnabled && strings.TrimSpace(d.StorePath) == "" {
		return fmt.Errorf("data.store_enabled 时 store_path 不能为空")
	}
	return nil
}

func (b *BacktestConfig) validate() error {
	if b.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital 必须为正数")
	}
	return nil
}
