package models

import (
	"time"

	"gorm.io/gorm"
)

// UserSettings 用户偏好设置模型
// 首次访问时按默认货币惰性创建（对应前端的 Wizard 引导页）
type UserSettings struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Currency  string         `json:"currency" gorm:"size:10;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (UserSettings) TableName() string {
	return "user_settings"
}
