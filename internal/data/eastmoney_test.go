package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const klineResponse = `{
  "rc": 0,
  "data": {
    "code": "600000",
    "name": "浦发银行",
    "klines": [
      "2023-01-03,7.29,7.30,7.35,7.25,240000,1750000,1.37,0.14,0.01,0.08",
      "2023-01-04,7.30,7.34,7.40,7.28,250000,1830000,1.64,0.55,0.04,0.09"
    ]
  }
}`

func TestEastMoneyFetchDaily(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/qt/stock/kline/get", r.URL.Path)
		gotQuery = map[string]string{
			"secid": r.URL.Query().Get("secid"),
			"klt":   r.URL.Query().Get("klt"),
			"fqt":   r.URL.Query().Get("fqt"),
			"beg":   r.URL.Query().Get("beg"),
			"end":   r.URL.Query().Get("end"),
		}
		w.Write([]byte(klineResponse))
	}))
	defer srv.Close()

	source := NewEastMoneySource(srv.URL, time.Second)
	table, err := source.FetchDaily(context.Background(), DailyRequest{
		Code: "600000", Start: "20230101", End: "20231231", Adjust: "qfq",
	})
	require.NoError(t, err)
	assert.Equal(t, "1.600000", gotQuery["secid"])
	assert.Equal(t, "101", gotQuery["klt"])
	assert.Equal(t, "1", gotQuery["fqt"])
	assert.Equal(t, "20230101", gotQuery["beg"])
	assert.Equal(t, "20231231", gotQuery["end"])

	require.Len(t, table.Rows, 2)
	assert.Equal(t, eastMoneyColumns, table.Columns)
	assert.Equal(t, "2023-01-03", table.Rows[0][0])
	assert.Equal(t, "7.29", table.Rows[0][1])
}

func TestEastMoneyFetchDailyNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rc": 0, "data": null}`))
	}))
	defer srv.Close()

	source := NewEastMoneySource(srv.URL, time.Second)
	table, err := source.FetchDaily(context.Background(), DailyRequest{Code: "600000", Start: "20230101", End: "20230102"})
	require.NoError(t, err)
	assert.True(t, table.Empty())
}

func TestEastMoneyFetchDailyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	source := NewEastMoneySource(srv.URL, time.Second)
	_, err := source.FetchDaily(context.Background(), DailyRequest{Code: "600000", Start: "20230101", End: "20230102"})
	assert.ErrorContains(t, err, "502")
}

func TestEastMoneyAdjustFlag(t *testing.T) {
	assert.Equal(t, "1", adjustFlag("qfq"))
	assert.Equal(t, "2", adjustFlag("hfq"))
	assert.Equal(t, "0", adjustFlag(""))
}
