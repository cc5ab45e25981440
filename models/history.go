package models

// 汇总表：按日（MonthHistory）和按月（YearHistory）预聚合的收支金额。
// 仅由 service.TransactionService 在交易写入的同一事务内维护，
// 其他组件只读，保证统计查询 O(1) 而非全表扫描。
// month 字段为 0-11（与前端图表约定一致），首次贡献时隐式创建，归零后不删除。

// MonthHistory 月视图汇总：每 (user, year, month, day) 一行
type MonthHistory struct {
	UserID  uint    `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Year    int     `json:"year" gorm:"primaryKey;autoIncrement:false"`
	Month   int     `json:"month" gorm:"primaryKey;autoIncrement:false"`
	Day     int     `json:"day" gorm:"primaryKey;autoIncrement:false"`
	Income  float64 `json:"income" gorm:"type:decimal(12,2);not null;default:0"`
	Expense float64 `json:"expense" gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName 设置表名
func (MonthHistory) TableName() string {
	return "month_histories"
}

// YearHistory 年视图汇总：每 (user, year, month) 一行
type YearHistory struct {
	UserID  uint    `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Year    int     `json:"year" gorm:"primaryKey;autoIncrement:false"`
	Month   int     `json:"month" gorm:"primaryKey;autoIncrement:false"`
	Income  float64 `json:"income" gorm:"type:decimal(12,2);not null;default:0"`
	Expense float64 `json:"expense" gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName 设置表名
func (YearHistory) TableName() string {
	return "year_histories"
}
