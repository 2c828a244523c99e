// Package stock 实现库存交易引擎的四个核心用例:
// 购入平台库存(BuyStock)、创建挂牌(CreateListing)、
// 更新挂牌(UpdateListing)、删除挂牌(DeleteListing)。
//
// 统一约束:
// 1. 每个用例是一个事务:锁行→校验→写入,要么全部提交要么全部回滚
// 2. 业务校验失败(库存不足、余额不足等)是正常结果,
//    以Result{Success:false}数据形式返回,不产生任何写入
// 3. 事务冲突重试耗尽返回可重试错误(apperrors.IsRetryable为真),
//    与业务失败严格区分
// 4. 事件发布、缓存失效、指标统计等副作用一律放在提交之后
package stock

import (
	"context"
	"time"

	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/metrics"
)

// Result 交易引擎操作结果
// Success=false表示业务校验未通过(终态,不应重试),
// Message为用户可读的失败原因
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Quantity  int    `json:"quantity"`   // 实际移动的库存数量
	TotalCost int64  `json:"total_cost"` // 实际发生的金额(分)
}

// rejected 构造业务校验失败结果
func rejected(message string) *Result {
	return &Result{Success: false, Message: message}
}

// TxRunner 事务执行器接口
// 由mysql.TxManager实现;测试中用内存实现替代
// fn可能因冲突重试被执行多次,必须是纯读写
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// 指标outcome取值
const (
	outcomeSuccess  = "success"  // 提交成功
	outcomeRejected = "rejected" // 业务校验失败(终态)
	outcomeConflict = "conflict" // 事务冲突重试耗尽(可重试)
	outcomeError    = "error"    // 基础设施错误
)

// outcomeOf 根据执行结果归类outcome
func outcomeOf(result *Result, err error) string {
	if err != nil {
		if apperrors.IsRetryable(err) {
			return outcomeConflict
		}
		return outcomeError
	}
	if result != nil && !result.Success {
		return outcomeRejected
	}
	return outcomeSuccess
}

// CacheInvalidator 商品列表缓存失效接口
// 由redis.CatalogCache实现;允许为nil(未接缓存时)
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// observeOp 记录一次引擎操作的指标
func observeOp(op, outcome string, start time.Time) {
	if metrics.EngineOpsTotal != nil {
		metrics.IncCounterVec(metrics.EngineOpsTotal, map[string]string{
			"op":      op,
			"outcome": outcome,
		})
	}
	if metrics.EngineOpDuration != nil {
		metrics.ObserveHistogramVec(metrics.EngineOpDuration, map[string]string{
			"op": op,
		}, time.Since(start).Seconds())
	}
}
