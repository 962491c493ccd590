package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRenamesVendorColumns(t *testing.T) {
	table := RawTable{
		Columns: []string{"日期", "开盘", "收盘", "最高", "最低", "成交量", "成交额", "振幅", "涨跌幅", "涨跌额", "换手率"},
		Rows: [][]string{
			{"2023-01-04", "7.30", "7.34", "7.40", "7.28", "250000", "1830000", "1.64", "0.55", "0.04", "0.09"},
			{"2023-01-03", "7.29", "7.30", "7.35", "7.25", "240000", "1750000", "1.37", "0.14", "0.01", "0.08"},
		},
	}
	series, err := Normalize(table)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.True(t, series.Sorted())

	first := series[0]
	assert.Equal(t, "2023-01-03", first.Date.Format("2006-01-02"))
	assert.Equal(t, 7.29, first.Open)
	assert.Equal(t, 7.30, first.Close)
	assert.Equal(t, 7.35, first.High)
	assert.Equal(t, 7.25, first.Low)
	assert.Equal(t, 240000.0, first.Volume)
	assert.Equal(t, 1750000.0, first.Amount)
	// 透传字段按规范名保留
	assert.Equal(t, 1.37, first.Extra["amplitude"])
	assert.Equal(t, 0.14, first.Extra["pct_chg"])
	assert.Equal(t, 0.08, first.Extra["turnover"])
}

func TestNormalizeDedupesByDate(t *testing.T) {
	table := RawTable{
		Columns: []string{"日期", "收盘"},
		Rows: [][]string{
			{"2023-01-03", "7.30"},
			{"2023-01-03", "9.99"},
			{"2023-01-04", "7.34"},
		},
	}
	series, err := Normalize(table)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 7.30, series[0].Close)
}

func TestNormalizeFallsBackToFirstColumnAsDate(t *testing.T) {
	table := RawTable{
		Columns: []string{"交易日", "收盘"},
		Rows: [][]string{
			{"2023-01-03", "7.30"},
		},
	}
	series, err := Normalize(table)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "2023-01-03", series[0].Date.Format("2006-01-02"))
	assert.Equal(t, 7.30, series[0].Close)
}

func TestNormalizeEmptyTable(t *testing.T) {
	series, err := Normalize(RawTable{Columns: eastMoneyColumns})
	require.NoError(t, err)
	assert.Len(t, series, 0)
}

func TestNormalizeBadDate(t *testing.T) {
	table := RawTable{
		Columns: []string{"日期", "收盘"},
		Rows:    [][]string{{"not-a-date", "7.30"}},
	}
	_, err := Normalize(table)
	assert.Error(t, err)
}

func TestNormalizeMissingNumericCellIsSkipped(t *testing.T) {
	table := RawTable{
		Columns: []string{"日期", "收盘", "换手率"},
		Rows:    [][]string{{"2023-01-03", "7.30", "-"}},
	}
	series, err := Normalize(table)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Nil(t, series[0].Extra)
}
