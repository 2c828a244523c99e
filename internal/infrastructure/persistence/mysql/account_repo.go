package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/account"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// accountRepository 余额账户仓储实现(MySQL)
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账户仓储
func NewAccountRepository(db *gorm.DB) account.Repository {
	return &accountRepository{db: db}
}

// Create 创建账户
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	model := toAccountModel(a)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "账户已存在")
		}
		return apperrors.Wrap(err, "创建账户失败")
	}

	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByUserID 查询账户(不加锁)
func (r *accountRepository) FindByUserID(ctx context.Context, userID uint) (*account.Account, error) {
	var model AccountModel
	err := r.getDB(ctx).First(&model, "user_id = ?", userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "查询账户失败")
	}

	return toAccountEntity(&model), nil
}

// LockByUserID 悲观锁查询账户
// SELECT * FROM accounts WHERE user_id = ? FOR UPDATE
// 余额校验与扣减必须基于锁定后的记录
func (r *accountRepository) LockByUserID(ctx context.Context, userID uint) (*account.Account, error) {
	var model AccountModel
	err := r.getDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "user_id = ?", userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "锁定账户失败")
	}

	return toAccountEntity(&model), nil
}

// Update 回写账户余额
// 除事务内锁定再回写外,这里额外带guarded条件兜底:
// UPDATE accounts SET balance = ? WHERE user_id = ? AND balance >= 0
// 保证任何代码路径都不会把余额写成负数
func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	if a.Balance < 0 {
		return account.ErrInsufficientBalance
	}

	result := r.getDB(ctx).Model(&AccountModel{}).
		Where("user_id = ?", a.UserID).
		Update("balance", a.Balance)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新账户余额失败")
	}
	if result.RowsAffected == 0 {
		// balance未变化时GORM也会返回0行,重查确认账户存在
		var count int64
		if err := r.getDB(ctx).Model(&AccountModel{}).
			Where("user_id = ?", a.UserID).Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "更新账户余额失败")
		}
		if count == 0 {
			return account.ErrAccountNotFound
		}
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toAccountEntity GORM模型 → 领域实体
func toAccountEntity(model *AccountModel) *account.Account {
	return &account.Account{
		UserID:    model.UserID,
		Balance:   model.Balance,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toAccountModel 领域实体 → GORM模型
func toAccountModel(a *account.Account) *AccountModel {
	return &AccountModel{
		UserID:  a.UserID,
		Balance: a.Balance,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *accountRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
