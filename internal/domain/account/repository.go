package account

import (
	"context"
)

// Repository 账户仓储接口
type Repository interface {
	// Create 创建账户
	Create(ctx context.Context, a *Account) error

	// FindByUserID 查询账户(不加锁,只读展示)
	FindByUserID(ctx context.Context, userID uint) (*Account, error)

	// LockByUserID 悲观锁查询账户(交易引擎扣款入口)
	// 余额校验必须基于锁定后的记录,避免并发双花
	LockByUserID(ctx context.Context, userID uint) (*Account, error)

	// Update 回写账户余额
	Update(ctx context.Context, a *Account) error
}
