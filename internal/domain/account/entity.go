package account

import (
	"time"
)

// Account 用户余额账户(聚合根)
// 设计说明:
// 1. 余额只能通过交易引擎在事务内借记/贷记,
//    禁止任何事务外的就地增减(否则非负不变式无法保证)
// 2. 余额使用int64存储"分"为单位
// 3. 充值/提现审批属于后台CRUD流程,不在交易引擎范围内,
//    但最终入账也必须走Credit/Debit
type Account struct {
	UserID    uint
	Balance   int64 // 余额(分),永远>=0
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount 创建账户
func NewAccount(userID uint, balance int64) *Account {
	now := time.Now()
	return &Account{
		UserID:    userID,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanAfford 判断余额是否足够支付
func (a *Account) CanAfford(amount int64) bool {
	return amount > 0 && a.Balance >= amount
}

// Debit 借记(扣款)
// 业务规则:扣款后余额不能为负数
func (a *Account) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if a.Balance < amount {
		return ErrInsufficientBalance
	}
	a.Balance -= amount
	a.UpdatedAt = time.Now()
	return nil
}

// Credit 贷记(入账)
func (a *Account) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.Balance += amount
	a.UpdatedAt = time.Now()
	return nil
}
