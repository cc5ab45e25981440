package api

import (
	"fmt"
	"net/url"

	"budgetbook/database"
	"budgetbook/middleware"
	"budgetbook/models"
	"budgetbook/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	svc *service.TransactionService
}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{
		svc: service.NewTransactionService(database.DB),
	}
}

// ExportExcel 导出交易记录为 Excel
// @Summary 导出交易记录为 Excel
// @Description 将 [from, to] 区间内的交易导出为 xlsx 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param from query string true "开始日期 (2024-01-01)"
// @Param to query string true "结束日期 (2024-03-31)"
// @Success 200 {file} binary "xlsx 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	txns, err := h.svc.ListRange(userID, from, to)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	currency := defaultCurrency()
	var settings models.UserSettings
	if err := database.DB.Where("user_id = ?", userID).First(&settings).Error; err == nil {
		currency = settings.Currency
	}

	// 创建 Excel 文件
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "交易记录"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 15)
	f.SetColWidth(sheetName, "D", "D", 18)
	f.SetColWidth(sheetName, "E", "E", 30)
	f.SetColWidth(sheetName, "F", "F", 14)

	// 写入表头
	headers := []string{"ID", "日期", "类型", "类别", "描述", "金额"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	var totalIncome, totalExpense float64
	for i, txn := range txns {
		row := i + 2
		typeName := "支出"
		if txn.Type == models.TypeIncome {
			typeName = "收入"
			totalIncome += txn.Amount
		} else {
			totalExpense += txn.Amount
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), txn.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), txn.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), typeName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), txn.CategoryIcon+" "+txn.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), txn.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), models.FormatAmount(currency, txn.Amount))

		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
	}

	// 添加汇总行
	summaryRow := len(txns) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow),
		fmt.Sprintf("收入 %s / 支出 %s", models.FormatAmount(currency, totalIncome), models.FormatAmount(currency, totalExpense)))
	f.MergeCell(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("E%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", summaryRow), fmt.Sprintf("共 %d 条", len(txns)))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	// 设置响应头
	filename := fmt.Sprintf("交易记录_%s_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))

	// 写入响应
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}
