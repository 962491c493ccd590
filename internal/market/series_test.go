package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNormalizeSortsAndDedupes(t *testing.T) {
	s := Series{
		{Date: day("2023-01-05"), Close: 3},
		{Date: day("2023-01-03"), Close: 1},
		{Date: day("2023-01-03"), Close: 99}, // 重复日期，应保留首次出现的记录
		{Date: day("2023-01-04"), Close: 2},
	}
	got := s.Normalize()
	assert.Len(t, got, 3)
	assert.True(t, got.Sorted())
	assert.Equal(t, 1.0, got[0].Close)
	assert.Equal(t, day("2023-01-03"), got[0].Date)
	assert.Equal(t, day("2023-01-05"), got[2].Date)
}

func TestNormalizeEmpty(t *testing.T) {
	var s Series
	got := s.Normalize()
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestSpan(t *testing.T) {
	s := Series{
		{Date: day("2023-01-01")},
		{Date: day("2023-12-31")},
	}
	assert.Equal(t, 364, s.Span())
	assert.Equal(t, 0, Series{{Date: day("2023-01-01")}}.Span())
	assert.Equal(t, 0, Series{}.Span())
}

func TestCloses(t *testing.T) {
	s := Series{
		{Date: day("2023-01-03"), Close: 10.5},
		{Date: day("2023-01-04"), Close: 11},
	}
	assert.Equal(t, []float64{10.5, 11}, s.Closes())
}
