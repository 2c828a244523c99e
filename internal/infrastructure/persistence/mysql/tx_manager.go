package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/metrics"
)

// txKey context中事务DB的键
// 使用私有类型避免与其他包的context键冲突
type txKey struct{}

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法,通过context传递事务DB(避免全局变量)
// 2. 显式冲突重试循环:InnoDB死锁/锁等待超时时回滚并重新执行事务体,
//    重试耗尽后返回"冲突可重试"错误(与业务校验失败严格区分)
// 3. 因此事务体fn必须是可重复执行的纯读写:
//    不得在fn内发事件、写缓存、打"最终结果"日志——这些副作用
//    一律放在Transaction返回成功之后
type TxManager struct {
	db           *gorm.DB
	maxRetries   int
	retryBackoff time.Duration
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{
		db:           db,
		maxRetries:   3,
		retryBackoff: 20 * time.Millisecond,
	}
}

// WithRetry 配置冲突重试参数
func (m *TxManager) WithRetry(maxRetries int, backoff time.Duration) *TxManager {
	if maxRetries > 0 {
		m.maxRetries = maxRetries
	}
	if backoff > 0 {
		m.retryBackoff = backoff
	}
	return m
}

// Transaction 执行事务(带冲突重试)
// 1. fn函数内的所有Repository操作都会在同一事务中执行
// 2. fn返回error时自动ROLLBACK,返回nil时自动COMMIT
// 3. 提交或执行过程中命中死锁/锁等待超时 → 退避后整体重新执行fn
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    entry, err := catalogRepo.LockByID(ctx, entryID) // FOR UPDATE
//	    if err != nil {
//	        return err
//	    }
//	    if err := entry.Deduct(quantity); err != nil {
//	        return err // 自动回滚
//	    }
//	    return catalogRepo.Update(ctx, entry)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			if metrics.EngineTxRetriesTotal != nil {
				metrics.EngineTxRetriesTotal.Inc()
			}
			// 退避后重试,线性递增即可(冲突窗口本身很短)
			select {
			case <-time.After(time.Duration(attempt) * m.retryBackoff):
			case <-ctx.Done():
				return apperrors.Wrap(ctx.Err(), "事务被取消")
			}
		}

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// 将事务DB注入到Context中
			// Repository的getDB方法会从context提取事务DB
			txCtx := context.WithValue(ctx, txKey{}, tx)
			return fn(txCtx)
		})

		if err == nil {
			return nil
		}

		// 业务错误(校验失败等)不重试,原样返回
		if !isConflictError(err) {
			return err
		}

		lastErr = err
	}

	// 重试耗尽:返回冲突错误,调用方应退避后重试
	return apperrors.WrapConflict(lastErr)
}

// dbFromContext 从context获取事务DB,没有则返回fallback
// 各Repository的getDB方法统一走这里
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
