package models

import (
	"crypto/rand"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PasswordReset 密码重置验证码模型
type PasswordReset struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Email     string         `json:"email" gorm:"size:100;not null;index"`
	Code      string         `json:"code" gorm:"size:6;not null"` // 6位数字验证码
	ExpiresAt time.Time      `json:"expires_at" gorm:"not null"`
	Used      bool           `json:"used" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (PasswordReset) TableName() string {
	return "password_resets"
}

// IsExpired 检查验证码是否过期
func (p *PasswordReset) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}

// IsValid 检查验证码是否有效
func (p *PasswordReset) IsValid() bool {
	return !p.Used && !p.IsExpired()
}

// GenerateResetCode 生成6位数字验证码
func GenerateResetCode() (string, error) {
	bytes := make([]byte, 3)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	code := int(bytes[0])<<16 | int(bytes[1])<<8 | int(bytes[2])
	code = code%900000 + 100000 // 确保是6位数
	return fmt.Sprintf("%06d", code), nil
}
