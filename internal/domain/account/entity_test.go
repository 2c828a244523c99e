package account

import (
	"testing"
)

// TestAccount_Debit 测试借记(扣款)
func TestAccount_Debit(t *testing.T) {
	a := NewAccount(101, 1000)

	if err := a.Debit(300); err != nil {
		t.Fatalf("扣款失败: %v", err)
	}
	if a.Balance != 700 {
		t.Errorf("余额错误: expected=700, got=%d", a.Balance)
	}

	// 扣到刚好为0
	if err := a.Debit(700); err != nil {
		t.Fatalf("扣光失败: %v", err)
	}
	if a.Balance != 0 {
		t.Errorf("余额应为0: got=%d", a.Balance)
	}

	// 余额不足
	if err := a.Debit(1); err == nil {
		t.Error("余额不足时扣款应失败")
	}
	if a.Balance != 0 {
		t.Errorf("失败的扣款不应改变余额: got=%d", a.Balance)
	}

	// 非法金额
	if err := a.Debit(0); err == nil {
		t.Error("金额0应被拒绝")
	}
	if err := a.Debit(-100); err == nil {
		t.Error("负金额应被拒绝")
	}
}

// TestAccount_Credit 测试贷记(入账)
func TestAccount_Credit(t *testing.T) {
	a := NewAccount(101, 0)

	if err := a.Credit(500); err != nil {
		t.Fatalf("入账失败: %v", err)
	}
	if a.Balance != 500 {
		t.Errorf("余额错误: expected=500, got=%d", a.Balance)
	}

	if err := a.Credit(0); err == nil {
		t.Error("金额0应被拒绝")
	}
	if err := a.Credit(-100); err == nil {
		t.Error("负金额应被拒绝")
	}
}

// TestAccount_CanAfford 测试支付能力判断
func TestAccount_CanAfford(t *testing.T) {
	a := NewAccount(101, 1000)

	if !a.CanAfford(1000) {
		t.Error("余额恰好时应可支付")
	}
	if a.CanAfford(1001) {
		t.Error("超出余额不可支付")
	}
	if a.CanAfford(0) {
		t.Error("金额0不可支付")
	}
	if a.CanAfford(-1) {
		t.Error("负金额不可支付")
	}
}
