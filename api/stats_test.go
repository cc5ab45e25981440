package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsHandler_Balance(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 区间统计
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"type", "total"}).
			AddRow("income", 5000.0).
			AddRow("expense", 1200.50))
	// 全部时间统计
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"type", "total"}).
			AddRow("income", 60000.0).
			AddRow("expense", 24000.75))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/stats/balance", NewStatsHandler().Balance)

	req := httptest.NewRequest("GET", "/stats/balance?from=2024-03-01&to=2024-03-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 5000.0, data["curr_income"])
	assert.Equal(t, 1200.50, data["curr_expense"])
	assert.Equal(t, 60000.0, data["total_income"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsHandler_Balance_MissingRange(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/stats/balance", NewStatsHandler().Balance)

	req := httptest.NewRequest("GET", "/stats/balance", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestStatsHandler_HistoryPeriods(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT DISTINCT .* FROM `month_histories`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"year"}).
			AddRow(2023).
			AddRow(2024))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/history/periods", NewStatsHandler().HistoryPeriods)

	req := httptest.NewRequest("GET", "/history/periods", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	assert.Equal(t, []interface{}{float64(2023), float64(2024)}, data)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsHandler_HistoryData_Year(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `year_histories`").
		WithArgs(uint(1), 2024).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "income", "expense"}).
			AddRow(0, 1000.0, 500.0).
			AddRow(5, 0.0, 300.0))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/history/data", NewStatsHandler().HistoryData)

	req := httptest.NewRequest("GET", "/history/data?timeframe=year&year=2024", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	// 稠密序列：12 个月都在
	require.Len(t, data, 12)
	first := data[0].(map[string]interface{})
	assert.Equal(t, 1000.0, first["income"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsHandler_HistoryData_InvalidTimeframe(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/history/data", NewStatsHandler().HistoryData)

	req := httptest.NewRequest("GET", "/history/data?timeframe=week&year=2024", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestStatsHandler_HistoryData_InvalidMonth(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/history/data", NewStatsHandler().HistoryData)

	// month 是 0-11
	req := httptest.NewRequest("GET", "/history/data?timeframe=month&year=2024&month=12", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
