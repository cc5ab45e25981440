package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetBalanceStats(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	// 区间内统计
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(1), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"type", "total"}).
			AddRow("income", 500.00).
			AddRow("expense", 200.00))

	// 全部时间统计
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"type", "total"}).
			AddRow("income", 1500.00).
			AddRow("expense", 700.00))

	svc := NewStatsService(db)
	stats, err := svc.GetBalanceStats(1, from, to)
	require.NoError(t, err)
	assert.Equal(t, 500.00, stats.CurrIncome)
	assert.Equal(t, 200.00, stats.CurrExpense)
	assert.Equal(t, 1500.00, stats.TotalIncome)
	assert.Equal(t, 700.00, stats.TotalExpense)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsService_GetBalanceStats_Empty(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"type", "total"}))
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"type", "total"}))

	svc := NewStatsService(db)
	stats, err := svc.GetBalanceStats(1, from, to)
	require.NoError(t, err)

	// 无数据时全部为 0
	assert.Equal(t, 0.0, stats.CurrIncome)
	assert.Equal(t, 0.0, stats.CurrExpense)
	assert.Equal(t, 0.0, stats.TotalIncome)
	assert.Equal(t, 0.0, stats.TotalExpense)
}

func TestStatsService_GetCategoryStats(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(1), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"category", "category_icon", "type", "total"}).
			AddRow("Food", "🍔", "expense", 300.00).
			AddRow("Salary", "💰", "income", 100.00))

	svc := NewStatsService(db)
	stats, err := svc.GetCategoryStats(1, from, to)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// 按总额倒序
	assert.Equal(t, "Food", stats[0].Category)
	assert.Equal(t, 300.00, stats[0].Sum)
	assert.Equal(t, "income", stats[1].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsService_GetHistoryPeriods(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT DISTINCT .* FROM `month_histories`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"year"}).
			AddRow(2023).
			AddRow(2024))

	svc := NewStatsService(db)
	years, err := svc.GetHistoryPeriods(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years)
}

func TestStatsService_GetHistoryPeriods_EmptyReturnsCurrentYear(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT DISTINCT .* FROM `month_histories`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"year"}))

	svc := NewStatsService(db)
	years, err := svc.GetHistoryPeriods(1)
	require.NoError(t, err)

	// 新用户始终有一个可选周期
	assert.Equal(t, []int{time.Now().UTC().Year()}, years)
}

func TestStatsService_GetHistoryData_Year(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `year_histories`").
		WithArgs(uint(1), 2024).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "income", "expense"}).
			AddRow(2, 100.00, 50.00).
			AddRow(6, 0.00, 80.00))

	svc := NewStatsService(db)
	data, err := svc.GetHistoryData(1, TimeframeYear, 2024, 0)
	require.NoError(t, err)

	// 稠密序列：12 个月全部存在，缺数据的月份补零
	require.Len(t, data, 12)
	for i, point := range data {
		assert.Equal(t, i, point.Month)
		assert.Equal(t, 2024, point.Year)
	}
	assert.Equal(t, 100.00, data[2].Income)
	assert.Equal(t, 50.00, data[2].Expense)
	assert.Equal(t, 80.00, data[6].Expense)
	assert.Equal(t, 0.00, data[0].Income)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsService_GetHistoryData_Month(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 2024 年 2 月（month=1，闰年）
	mock.ExpectQuery("SELECT .* FROM `month_histories`").
		WithArgs(uint(1), 2024, 1).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "income", "expense"}).
			AddRow(10, 0.00, 30.00))

	svc := NewStatsService(db)
	data, err := svc.GetHistoryData(1, TimeframeMonth, 2024, 1)
	require.NoError(t, err)

	// 闰年二月补齐 29 天
	require.Len(t, data, 29)
	for i, point := range data {
		assert.Equal(t, i+1, point.Day)
	}
	assert.Equal(t, 30.00, data[9].Expense)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsService_GetHistoryData_EmptyPeriod(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `year_histories`").
		WithArgs(uint(1), 2020).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "income", "expense"}))

	svc := NewStatsService(db)
	data, err := svc.GetHistoryData(1, TimeframeYear, 2020, 0)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDaysInMonth(t *testing.T) {
	// month 为 0-11
	assert.Equal(t, 31, daysInMonth(2024, 0))  // 一月
	assert.Equal(t, 29, daysInMonth(2024, 1))  // 闰年二月
	assert.Equal(t, 28, daysInMonth(2023, 1))  // 平年二月
	assert.Equal(t, 30, daysInMonth(2024, 3))  // 四月
	assert.Equal(t, 31, daysInMonth(2024, 11)) // 十二月
}
