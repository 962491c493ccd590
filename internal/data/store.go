package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quantmon/internal/market"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// BarRecord 行情落库模型。振幅/涨跌幅等透传字段整体存成 JSON。
type BarRecord struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"size:16;uniqueIndex:idx_symbol_adjust_date"`
	Adjust string    `gorm:"size:8;uniqueIndex:idx_symbol_adjust_date"`
	Date   time.Time `gorm:"uniqueIndex:idx_symbol_adjust_date"`
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Amount float64
	Extra  datatypes.JSON
}

func (BarRecord) TableName() string { return "bars" }

// Store 把拉取到的行情写入本地 sqlite，供查询接口使用。
// 只做旁路记录，拉取路径从不读它。
type Store struct {
	db *gorm.DB
}

func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开行情库失败: %w", err)
	}
	if err := db.AutoMigrate(&BarRecord{}); err != nil {
		return nil, fmt.Errorf("迁移行情库失败: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveSeries 按 (symbol, adjust, date) 去重写入，返回写入行数。
func (s *Store) SaveSeries(ctx context.Context, symbol, adjust string, series market.Series) (int, error) {
	if len(series) == 0 {
		return 0, nil
	}
	records := make([]BarRecord, 0, len(series))
	for _, bar := range series {
		rec := BarRecord{
			Symbol: symbol,
			Adjust: adjust,
			Date:   bar.Date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
			Amount: bar.Amount,
		}
		if len(bar.Extra) > 0 {
			raw, err := json.Marshal(bar.Extra)
			if err != nil {
				return 0, err
			}
			rec.Extra = datatypes.JSON(raw)
		}
		records = append(records, rec)
	}
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "adjust"}, {Name: "date"}},
		UpdateAll: true,
	}).CreateInBatches(records, 200)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return len(records), nil
}

// QuerySeries 读取指定区间的落库行情，按日期升序。limit<=0 表示不限制。
func (s *Store) QuerySeries(ctx context.Context, symbol, adjust string, start, end time.Time, limit int) (market.Series, error) {
	q := s.db.WithContext(ctx).Model(&BarRecord{}).
		Where("symbol = ? AND adjust = ?", symbol, adjust).
		Order("date ASC")
	if !start.IsZero() {
		q = q.Where("date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("date <= ?", end)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var records []BarRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	series := make(market.Series, 0, len(records))
	for _, rec := range records {
		bar := market.Bar{
			Date:   rec.Date.UTC(),
			Open:   rec.Open,
			High:   rec.High,
			Low:    rec.Low,
			Close:  rec.Close,
			Volume: rec.Volume,
			Amount: rec.Amount,
		}
		if len(rec.Extra) > 0 {
			extra := make(map[string]float64)
			if err := json.Unmarshal(rec.Extra, &extra); err == nil && len(extra) > 0 {
				bar.Extra = extra
			}
		}
		series = append(series, bar)
	}
	return series, nil
}
