package api

import (
	"errors"
	"strings"

	"budgetbook/database"
	"budgetbook/middleware"
	"budgetbook/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler 类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CreateCategoryRequest 创建类别请求
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=3,max=20" example:"Food"`
	Icon string `json:"icon" binding:"max=20" example:"🍔"`
	Type string `json:"type" binding:"required,oneof=income expense" example:"expense"`
}

// DeleteCategoryRequest 删除类别请求
type DeleteCategoryRequest struct {
	Name string `json:"name" binding:"required,min=3,max=20" example:"Food"`
	Type string `json:"type" binding:"required,oneof=income expense" example:"expense"`
}

// Create 创建类别
// @Summary 创建类别
// @Description 创建用户自定义类别，同一用户下 (name, type) 唯一
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 409 {object} Response "类别已存在"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if len([]rune(req.Name)) < 3 {
		BadRequest(c, "类别名称长度应为 3-20 个字符")
		return
	}

	// 唯一性：同一用户同类型下名称不可重复
	var existing models.Category
	if err := database.DB.Where("user_id = ? AND name = ? AND type = ?", userID, req.Name, req.Type).
		First(&existing).Error; err == nil {
		Conflict(c, "类别已存在")
		return
	}

	category := models.Category{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
		Type:   req.Type,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		// 并发创建同名类别时以唯一索引为准
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "类别已存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建类别失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", category)
}

// Delete 删除类别
// @Summary 删除类别
// @Description 按 (name, type) 删除类别。已有交易保存的是类别快照，不受删除影响
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteCategoryRequest true "类别标识"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req DeleteCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var category models.Category
	if err := database.DB.Where("user_id = ? AND name = ? AND type = ?", userID, req.Name, req.Type).
		First(&category).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}

	// 只删类别本身，交易上的名称/图标快照保持原样
	if err := database.DB.Delete(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// List 获取类别列表
// @Summary 获取类别列表
// @Description 获取当前用户的类别，可按类型筛选，按名称升序
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param type query string false "类型筛选" Enums(income,expense)
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 400 {object} Response "类型参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)

	if typ := c.Query("type"); typ != "" {
		if !models.IsValidTransactionType(typ) {
			BadRequest(c, "type 参数值错误，可选值：income、expense")
			return
		}
		query = query.Where("type = ?", typ)
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, categories)
}
