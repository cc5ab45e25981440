package api

import (
	"errors"
	"strconv"
	"time"

	"budgetbook/config"
	"budgetbook/database"
	"budgetbook/middleware"
	"budgetbook/models"
	"budgetbook/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct {
	svc *service.TransactionService
}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{
		svc: service.NewTransactionService(database.DB),
	}
}

// CreateTransactionRequest 创建交易请求
type CreateTransactionRequest struct {
	Description string  `json:"description" example:"午餐"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"45.50"`
	Category    string  `json:"category" binding:"required" example:"Food"`
	Date        string  `json:"date" binding:"required" example:"2024-03-15"`
	Type        string  `json:"type" binding:"required,oneof=income expense" example:"expense"`
}

// TransactionView 交易记录视图，附带按用户货币格式化后的金额
type TransactionView struct {
	models.Transaction
	FormattedAmount string `json:"formatted_amount" example:"₹45.50"`
}

// Create 创建交易
// @Summary 创建交易
// @Description 创建一条交易记录，并在同一事务内累加月/年汇总表。类别必须已存在，交易上保存类别名称与图标的快照
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 金额必须大于 0 且精确到分
	if !models.IsValidAmount(req.Amount) {
		BadRequest(c, "金额必须大于 0 且最多两位小数")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		BadRequest(c, "日期格式错误，应为：2024-03-15")
		return
	}

	txn, err := h.svc.Create(userID, service.CreateTransactionInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Type:        req.Type,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			NotFound(c, "类别不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建交易失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", txn)
}

// Delete 删除交易
// @Summary 删除交易
// @Description 删除指定交易，并在同一事务内回减月/年汇总表
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "无效的ID"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := h.svc.Delete(userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			NotFound(c, "交易不存在")
		case errors.Is(err, service.ErrHistoryRowMissing):
			// 汇总行缺失说明数据已不一致，必须显式失败
			InternalError(c, SafeErrorMessage(err, "删除失败"))
		default:
			InternalError(c, SafeErrorMessage(err, "删除失败"))
		}
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// List 获取交易列表
// @Summary 获取交易列表
// @Description 获取 [from, to] 区间内的交易，按日期倒序，金额按用户货币格式化
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param from query string true "开始日期 (2024-01-01)"
// @Param to query string true "结束日期 (2024-03-31)"
// @Success 200 {object} Response{data=[]TransactionView} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
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

	// 用户未初始化偏好时按默认货币展示
	currency := defaultCurrency()
	var settings models.UserSettings
	if err := database.DB.Where("user_id = ?", userID).First(&settings).Error; err == nil {
		currency = settings.Currency
	}

	views := make([]TransactionView, 0, len(txns))
	for _, txn := range txns {
		views = append(views, TransactionView{
			Transaction:     txn,
			FormattedAmount: models.FormatAmount(currency, txn.Amount),
		})
	}

	Success(c, views)
}

// defaultCurrency 读取配置的默认货币
func defaultCurrency() string {
	if config.GlobalConfig != nil && config.GlobalConfig.App.DefaultCurrency != "" {
		return config.GlobalConfig.App.DefaultCurrency
	}
	return "INR"
}
