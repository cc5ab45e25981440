package api

import (
	"strconv"

	"budgetbook/database"
	"budgetbook/middleware"
	"budgetbook/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler 统计查询处理器
type StatsHandler struct {
	svc *service.StatsService
}

// NewStatsHandler 创建统计查询处理器
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{
		svc: service.NewStatsService(database.DB),
	}
}

// Balance 获取余额统计
// @Summary 获取余额统计
// @Description 统计 [from, to] 区间内以及全部时间的收入/支出总和
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param from query string true "开始日期 (2024-01-01)"
// @Param to query string true "结束日期 (2024-03-31)"
// @Success 200 {object} Response{data=service.BalanceStats} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/stats/balance [get]
func (h *StatsHandler) Balance(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	stats, err := h.svc.GetBalanceStats(userID, from, to)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, stats)
}

// Categories 获取类别维度统计
// @Summary 获取类别维度统计
// @Description 统计 [from, to] 区间内按 (类别, 图标, 类型) 分组的金额，按总额倒序
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param from query string true "开始日期 (2024-01-01)"
// @Param to query string true "结束日期 (2024-03-31)"
// @Success 200 {object} Response{data=[]service.CategoryStat} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/stats/categories [get]
func (h *StatsHandler) Categories(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	stats, err := h.svc.GetCategoryStats(userID, from, to)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, stats)
}

// HistoryPeriods 获取历史数据覆盖的年份
// @Summary 获取历史数据覆盖的年份
// @Description 返回用户汇总数据覆盖的年份列表（升序），无数据时返回当前年份
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]int} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/history/periods [get]
func (h *StatsHandler) HistoryPeriods(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	years, err := h.svc.GetHistoryPeriods(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, years)
}

// HistoryData 获取历史图表数据
// @Summary 获取历史图表数据
// @Description timeframe=year 返回指定年份按月的 12 点稠密序列；timeframe=month 返回指定年月按天的稠密序列（month 为 0-11），缺数据的点补零
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param timeframe query string true "粒度" Enums(month,year)
// @Param year query int true "年份 (2000-3000)"
// @Param month query int false "月份 (0-11，timeframe=month 时使用)"
// @Success 200 {object} Response{data=[]service.HistoryPoint} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/history/data [get]
func (h *StatsHandler) HistoryData(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	timeframe := c.Query("timeframe")
	if timeframe != service.TimeframeMonth && timeframe != service.TimeframeYear {
		BadRequest(c, "timeframe 参数值错误，可选值：month、year")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 3000 {
		BadRequest(c, "year 参数错误，应为 2000-3000 之间的年份")
		return
	}

	// month 缺省为 0，与图表查询约定一致
	month := 0
	if monthStr := c.Query("month"); monthStr != "" {
		month, err = strconv.Atoi(monthStr)
		if err != nil || month < 0 || month > 11 {
			BadRequest(c, "month 参数错误，应为 0-11")
			return
		}
	}

	data, err := h.svc.GetHistoryData(userID, timeframe, year, month)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, data)
}
