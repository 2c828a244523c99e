package listing

import (
	"testing"
)

// TestListing_Merge 测试合并追加挂牌
func TestListing_Merge(t *testing.T) {
	l := NewListing(201, 1, 3, 800, "测试商品", "", "")

	if err := l.Merge(4, 750); err != nil {
		t.Fatalf("合并失败: %v", err)
	}
	if l.Quantity != 7 {
		t.Errorf("数量错误: expected=7, got=%d", l.Quantity)
	}
	if l.Price != 750 {
		t.Errorf("价格应覆写为最新挂牌价: expected=750, got=%d", l.Price)
	}

	if err := l.Merge(0, 800); err == nil {
		t.Error("数量0应被拒绝")
	}
	if err := l.Merge(1, 0); err == nil {
		t.Error("价格0应被拒绝")
	}
	if l.Quantity != 7 || l.Price != 750 {
		t.Error("失败的合并不应改变挂牌")
	}
}

// TestListing_SetQuantity 测试直接设定数量
func TestListing_SetQuantity(t *testing.T) {
	l := NewListing(201, 1, 6, 800, "测试商品", "", "")

	// 调小直接设定(差额不经过这里退回)
	if err := l.SetQuantity(2); err != nil {
		t.Fatalf("设定失败: %v", err)
	}
	if l.Quantity != 2 {
		t.Errorf("数量错误: expected=2, got=%d", l.Quantity)
	}

	// 允许设为0
	if err := l.SetQuantity(0); err != nil {
		t.Fatalf("设定0失败: %v", err)
	}

	// 负数拒绝
	if err := l.SetQuantity(-1); err == nil {
		t.Error("负数量应被拒绝")
	}
}

// TestListing_SetPrice 测试改价
func TestListing_SetPrice(t *testing.T) {
	l := NewListing(201, 1, 6, 800, "测试商品", "", "")

	if err := l.SetPrice(999); err != nil {
		t.Fatalf("改价失败: %v", err)
	}
	if l.Price != 999 {
		t.Errorf("价格错误: expected=999, got=%d", l.Price)
	}

	if err := l.SetPrice(0); err == nil {
		t.Error("价格0应被拒绝")
	}
	if err := l.SetPrice(-1); err == nil {
		t.Error("负价格应被拒绝")
	}
}

// TestListing_IsOwnedBy 测试归属判断
func TestListing_IsOwnedBy(t *testing.T) {
	l := NewListing(201, 1, 6, 800, "测试商品", "", "")

	if !l.IsOwnedBy(201) {
		t.Error("挂牌主判断错误")
	}
	if l.IsOwnedBy(999) {
		t.Error("非挂牌主不应通过归属判断")
	}
}
