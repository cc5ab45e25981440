package api

import (
	"errors"

	"budgetbook/database"
	"budgetbook/middleware"
	"budgetbook/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserSettingsHandler 用户偏好设置处理器
type UserSettingsHandler struct{}

// NewUserSettingsHandler 创建用户偏好设置处理器
func NewUserSettingsHandler() *UserSettingsHandler {
	return &UserSettingsHandler{}
}

// UpdateCurrencyRequest 更新货币请求
type UpdateCurrencyRequest struct {
	Currency string `json:"currency" binding:"required" example:"USD"`
}

// Get 获取用户偏好设置
// @Summary 获取用户偏好设置
// @Description 获取当前用户的偏好设置。新用户首次访问时按默认货币惰性创建
// @Tags 用户设置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.UserSettings} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/user-settings [get]
func (h *UserSettingsHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var settings models.UserSettings
	if err := database.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		// 新用户：按默认货币创建
		settings = models.UserSettings{
			UserID:   userID,
			Currency: defaultCurrency(),
		}
		if err := database.DB.Create(&settings).Error; err != nil {
			// 并发首次访问：另一请求已建好记录，读回即可
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if err := database.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
					InternalError(c, SafeErrorMessage(err, "初始化用户设置失败"))
					return
				}
				Success(c, settings)
				return
			}
			InternalError(c, SafeErrorMessage(err, "初始化用户设置失败"))
			return
		}
	}

	Success(c, settings)
}

// UpdateCurrency 更新用户货币
// @Summary 更新用户货币
// @Description 更新当前用户的展示货币，仅支持固定的货币列表
// @Tags 用户设置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateCurrencyRequest true "货币代码"
// @Success 200 {object} Response{data=models.UserSettings} "更新成功"
// @Failure 400 {object} Response "不支持的货币"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/user-settings/currency [put]
func (h *UserSettingsHandler) UpdateCurrency(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if !models.IsSupportedCurrency(req.Currency) {
		BadRequest(c, "不支持的货币代码: "+req.Currency)
		return
	}

	var settings models.UserSettings
	if err := database.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		settings = models.UserSettings{
			UserID:   userID,
			Currency: req.Currency,
		}
		err := database.DB.Create(&settings).Error
		if err == nil {
			SuccessWithMessage(c, "更新成功", settings)
			return
		}
		// 并发初始化撞上 user_id 唯一索引时改走更新
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			InternalError(c, SafeErrorMessage(err, "保存用户设置失败"))
			return
		}
		if err := database.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "保存用户设置失败"))
			return
		}
	}

	if err := database.DB.Model(&settings).Update("currency", req.Currency).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	settings.Currency = req.Currency

	SuccessWithMessage(c, "更新成功", settings)
}

// Currencies 获取支持的货币列表
// @Summary 获取支持的货币列表
// @Description 返回可选的货币固定列表
// @Tags 用户设置
// @Produce json
// @Success 200 {object} Response{data=[]models.Currency} "获取成功"
// @Router /api/v1/currencies [get]
func (h *UserSettingsHandler) Currencies(c *gin.Context) {
	Success(c, models.Currencies)
}
