package api

import (
	"fmt"
	"time"

	"budgetbook/config"

	"github.com/gin-gonic/gin"
)

// parseDateRange 解析并校验 from/to 查询参数（格式 2006-01-02，UTC 日期）
// 区间跨度必须满足 0 <= to-from <= app.max_date_range_days
// 校验失败时已写入 400 响应，调用方直接 return 即可
func parseDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		BadRequest(c, "请提供 from 和 to 参数（格式：2024-01-01）")
		return
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		BadRequest(c, "from 格式错误，应为：2024-01-01")
		return
	}
	to, err = time.Parse("2006-01-02", toStr)
	if err != nil {
		BadRequest(c, "to 格式错误，应为：2024-12-31")
		return
	}

	maxDays := 90
	if config.GlobalConfig != nil && config.GlobalConfig.App.MaxDateRangeDays > 0 {
		maxDays = config.GlobalConfig.App.MaxDateRangeDays
	}

	days := int(to.Sub(from).Hours() / 24)
	if days < 0 || days > maxDays {
		BadRequest(c, fmt.Sprintf("时间区间无效，跨度应在 0 到 %d 天之间", maxDays))
		return
	}

	return from, to, true
}
