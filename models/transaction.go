package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// TypeIncome 收入
	TypeIncome = "income"
	// TypeExpense 支出
	TypeExpense = "expense"
)

// Transaction 交易记录模型
// category/category_icon 为创建时的类别快照，类别删除或改名后历史记录展示不受影响
type Transaction struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	Amount       float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description  string         `json:"description" gorm:"size:255;default:''"`
	Category     string         `json:"category" gorm:"size:20;not null"`
	CategoryIcon string         `json:"category_icon" gorm:"size:20"`
	Date         time.Time      `json:"date" gorm:"index;not null"`
	Type         string         `json:"type" gorm:"size:10;not null;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType 校验交易类型
func IsValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// IsValidAmount 校验金额：必须大于 0 且精确到分（0.01 的整数倍）
func IsValidAmount(amount float64) bool {
	d := decimal.NewFromFloat(amount)
	return d.IsPositive() && d.Equal(d.Round(2))
}
