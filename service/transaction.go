package service

import (
	"errors"
	"time"

	"budgetbook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCategoryNotFound 引用的类别不存在
	ErrCategoryNotFound = errors.New("类别不存在")
	// ErrTransactionNotFound 交易记录不存在
	ErrTransactionNotFound = errors.New("交易记录不存在")
	// ErrHistoryRowMissing 汇总行缺失：删除交易时本应存在的汇总行找不到，
	// 属于不变量被破坏，必须让整个事务失败而不是补一行负数
	ErrHistoryRowMissing = errors.New("汇总数据缺失，数据不一致")
)

// CreateTransactionInput 创建交易的入参
type CreateTransactionInput struct {
	Description string
	Amount      float64
	Category    string
	Date        time.Time // 按 UTC 日历日期取 年/月/日
	Type        string    // income / expense
}

// TransactionService 交易写入服务，同时负责维护 MonthHistory/YearHistory 汇总表。
// 交易行与两张汇总表的增减必须落在同一个数据库事务里，
// 汇总字段一律用 SQL 原子自增/自减，避免并发下丢失更新。
type TransactionService struct {
	db *gorm.DB
}

// NewTransactionService 创建交易服务
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// Create 创建交易并同步累加两张汇总表
// 类别按 (userID, name) 解析，交易上保存类别名称与图标的快照；
// 注意：不校验提交的 type 与类别自身的 type 是否一致，与原有行为保持一致
func (s *TransactionService) Create(userID uint, in CreateTransactionInput) (*models.Transaction, error) {
	var category models.Category
	if err := s.db.Where("user_id = ? AND name = ?", userID, in.Category).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	date := in.Date.UTC()
	year := date.Year()
	month := int(date.Month()) - 1 // 0-11，与图表约定一致
	day := date.Day()

	var incomeInc, expenseInc float64
	if in.Type == models.TypeIncome {
		incomeInc = in.Amount
	} else {
		expenseInc = in.Amount
	}

	txn := &models.Transaction{
		UserID:       userID,
		Amount:       in.Amount,
		Description:  in.Description,
		Category:     category.Name,
		CategoryIcon: category.Icon,
		Date:         date,
		Type:         in.Type,
	}

	// 交易行 + 两张汇总表必须原子落库，任一失败全部回滚
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		monthRow := &models.MonthHistory{
			UserID:  userID,
			Year:    year,
			Month:   month,
			Day:     day,
			Income:  incomeInc,
			Expense: expenseInc,
		}
		if err := tx.Clauses(clause.OnConflict{
			DoUpdates: clause.Assignments(map[string]interface{}{
				"income":  gorm.Expr("income + ?", incomeInc),
				"expense": gorm.Expr("expense + ?", expenseInc),
			}),
		}).Create(monthRow).Error; err != nil {
			return err
		}

		yearRow := &models.YearHistory{
			UserID:  userID,
			Year:    year,
			Month:   month,
			Income:  incomeInc,
			Expense: expenseInc,
		}
		if err := tx.Clauses(clause.OnConflict{
			DoUpdates: clause.Assignments(map[string]interface{}{
				"income":  gorm.Expr("income + ?", incomeInc),
				"expense": gorm.Expr("expense + ?", expenseInc),
			}),
		}).Create(yearRow).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// Delete 删除交易并同步回减两张汇总表
// 汇总行在创建交易时一定已存在，回减时影响行数为 0 说明数据已不一致，
// 返回 ErrHistoryRowMissing 并回滚整个事务
func (s *TransactionService) Delete(userID, txnID uint) error {
	var txn models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", txnID, userID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	date := txn.Date.UTC()
	year := date.Year()
	month := int(date.Month()) - 1
	day := date.Day()

	// 按交易类型选择回减的字段
	field := "expense"
	if txn.Type == models.TypeIncome {
		field = "income"
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&txn).Error; err != nil {
			return err
		}

		res := tx.Model(&models.MonthHistory{}).
			Where("user_id = ? AND year = ? AND month = ? AND day = ?", userID, year, month, day).
			UpdateColumn(field, gorm.Expr(field+" - ?", txn.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrHistoryRowMissing
		}

		res = tx.Model(&models.YearHistory{}).
			Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
			UpdateColumn(field, gorm.Expr(field+" - ?", txn.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrHistoryRowMissing
		}

		return nil
	})
}

// ListRange 查询用户在 [from, to] 内的交易，按日期倒序
func (s *TransactionService) ListRange(userID uint, from, to time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").
		Find(&txns).Error
	return txns, err
}
