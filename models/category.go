package models

import (
	"time"
)

// Category 用户自定义类别模型
// 同一用户下 (name, type) 唯一：同名类别可在收入/支出下各存在一个
// 删除是物理删除，保证删除后可以立刻重建同名类别；
// 交易上保存的是名称/图标快照，不受类别删除影响
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_name_type"`
	Name      string    `json:"name" gorm:"size:20;not null;uniqueIndex:idx_user_name_type"`
	Icon      string    `json:"icon" gorm:"size:20"`
	Type      string    `json:"type" gorm:"size:10;not null;uniqueIndex:idx_user_name_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}
