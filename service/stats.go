package service

import (
	"time"

	"budgetbook/models"

	"gorm.io/gorm"
)

// BalanceStats 余额统计：区间内与全部时间的收支总和
type BalanceStats struct {
	CurrIncome   float64 `json:"curr_income"`
	CurrExpense  float64 `json:"curr_expense"`
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
}

// CategoryStat 类别维度统计
type CategoryStat struct {
	Category     string  `json:"category"`
	CategoryIcon string  `json:"category_icon"`
	Type         string  `json:"type"`
	Sum          float64 `json:"sum" gorm:"column:total"`
}

// HistoryPoint 历史图表上的一个数据点
// 年视图按月（month 0-11），月视图按天（day 1-31），缺数据的点补零返回
type HistoryPoint struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Day     int     `json:"day,omitempty"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// 历史查询的 timeframe 取值
const (
	TimeframeMonth = "month"
	TimeframeYear  = "year"
)

// StatsService 只读统计查询服务
// 余额/类别统计直接对交易表做分组求和，历史图表读预聚合的汇总表
type StatsService struct {
	db *gorm.DB
}

// NewStatsService 创建统计服务
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

type typeSum struct {
	Type  string
	Total float64
}

// GetBalanceStats 获取区间内与全部时间的收支总和
func (s *StatsService) GetBalanceStats(userID uint, from, to time.Time) (*BalanceStats, error) {
	var current []typeSum
	err := s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("type").
		Scan(&current).Error
	if err != nil {
		return nil, err
	}

	var overall []typeSum
	err = s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&overall).Error
	if err != nil {
		return nil, err
	}

	stats := &BalanceStats{}
	for _, row := range current {
		switch row.Type {
		case models.TypeIncome:
			stats.CurrIncome = row.Total
		case models.TypeExpense:
			stats.CurrExpense = row.Total
		}
	}
	for _, row := range overall {
		switch row.Type {
		case models.TypeIncome:
			stats.TotalIncome = row.Total
		case models.TypeExpense:
			stats.TotalExpense = row.Total
		}
	}
	return stats, nil
}

// GetCategoryStats 获取区间内按 (类别, 图标, 类型) 分组的金额统计，按总额倒序
func (s *StatsService) GetCategoryStats(userID uint, from, to time.Time) ([]CategoryStat, error) {
	var stats []CategoryStat
	err := s.db.Model(&models.Transaction{}).
		Select("category, category_icon, type, COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("category, category_icon, type").
		Order("total DESC").
		Scan(&stats).Error
	return stats, err
}

// GetHistoryPeriods 获取用户汇总数据覆盖的年份（升序）
// 没有任何数据时返回只含当前年份的列表，保证前端始终有可选周期
func (s *StatsService) GetHistoryPeriods(userID uint) ([]int, error) {
	var years []int
	err := s.db.Model(&models.MonthHistory{}).
		Distinct("year").
		Where("user_id = ?", userID).
		Order("year ASC").
		Pluck("year", &years).Error
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return []int{time.Now().UTC().Year()}, nil
	}
	return years, nil
}

// GetHistoryData 获取历史图表数据
// timeframe=year: 读 YearHistory，返回 12 个月的稠密序列（month 0-11）
// timeframe=month: 读 MonthHistory，返回该月天数长度的稠密序列（day 1-N）
// 对应周期没有任何汇总数据时返回空序列
func (s *StatsService) GetHistoryData(userID uint, timeframe string, year, month int) ([]HistoryPoint, error) {
	switch timeframe {
	case TimeframeYear:
		return s.yearlyHistoryData(userID, year)
	default:
		return s.monthlyHistoryData(userID, year, month)
	}
}

type bucketSum struct {
	Bucket  int
	Income  float64
	Expense float64
}

func (s *StatsService) yearlyHistoryData(userID uint, year int) ([]HistoryPoint, error) {
	var rows []bucketSum
	err := s.db.Model(&models.YearHistory{}).
		Select("month as bucket, COALESCE(SUM(income), 0) as income, COALESCE(SUM(expense), 0) as expense").
		Where("user_id = ? AND year = ?", userID, year).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []HistoryPoint{}, nil
	}

	byMonth := make(map[int]bucketSum, len(rows))
	for _, row := range rows {
		byMonth[row.Bucket] = row
	}

	// 补齐 12 个月，缺数据的月份补零，图表无需处理空洞
	data := make([]HistoryPoint, 0, 12)
	for m := 0; m < 12; m++ {
		point := HistoryPoint{Year: year, Month: m}
		if row, ok := byMonth[m]; ok {
			point.Income = row.Income
			point.Expense = row.Expense
		}
		data = append(data, point)
	}
	return data, nil
}

func (s *StatsService) monthlyHistoryData(userID uint, year, month int) ([]HistoryPoint, error) {
	var rows []bucketSum
	err := s.db.Model(&models.MonthHistory{}).
		Select("day as bucket, COALESCE(SUM(income), 0) as income, COALESCE(SUM(expense), 0) as expense").
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []HistoryPoint{}, nil
	}

	byDay := make(map[int]bucketSum, len(rows))
	for _, row := range rows {
		byDay[row.Bucket] = row
	}

	// 补齐该月所有天，含闰年二月
	days := daysInMonth(year, month)
	data := make([]HistoryPoint, 0, days)
	for d := 1; d <= days; d++ {
		point := HistoryPoint{Year: year, Month: month, Day: d}
		if row, ok := byDay[d]; ok {
			point.Income = row.Income
			point.Expense = row.Expense
		}
		data = append(data, point)
	}
	return data, nil
}

// daysInMonth 返回 (year, month) 的天数，month 为 0-11
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
