package catalog

import (
	"testing"
)

// TestEntry_Deduct 测试扣减在售数量
func TestEntry_Deduct(t *testing.T) {
	e := NewEntry("SKU-T1", "测试商品", "", 500, 10, "测试", "")

	// 正常扣减
	if err := e.Deduct(3); err != nil {
		t.Fatalf("扣减失败: %v", err)
	}
	if e.Quantity != 7 {
		t.Errorf("余量错误: expected=7, got=%d", e.Quantity)
	}
	if e.TotalAdded != 10 {
		t.Errorf("累计入库量不应被扣减改变: got=%d", e.TotalAdded)
	}

	// 扣光
	if err := e.Deduct(7); err != nil {
		t.Fatalf("扣光失败: %v", err)
	}
	if e.Quantity != 0 {
		t.Errorf("余量应为0: got=%d", e.Quantity)
	}

	// 超扣
	if err := e.Deduct(1); err == nil {
		t.Error("余量不足时扣减应失败")
	}
	if e.Quantity != 0 {
		t.Errorf("失败的扣减不应改变余量: got=%d", e.Quantity)
	}

	// 非法数量
	if err := e.Deduct(0); err == nil {
		t.Error("数量0应被拒绝")
	}
	if err := e.Deduct(-1); err == nil {
		t.Error("负数量应被拒绝")
	}
}

// TestEntry_DeductNotListed 未上架商品不可扣减
func TestEntry_DeductNotListed(t *testing.T) {
	e := NewEntry("SKU-T2", "测试商品", "", 500, 10, "测试", "")
	e.SetListed(false)

	if err := e.Deduct(1); err == nil {
		t.Error("未上架商品扣减应失败")
	}
	if e.Quantity != 10 {
		t.Errorf("余量不应改变: got=%d", e.Quantity)
	}
}

// TestEntry_Restock 测试补货
func TestEntry_Restock(t *testing.T) {
	e := NewEntry("SKU-T3", "测试商品", "", 500, 10, "测试", "")

	if err := e.Restock(5); err != nil {
		t.Fatalf("补货失败: %v", err)
	}
	if e.Quantity != 15 {
		t.Errorf("余量错误: expected=15, got=%d", e.Quantity)
	}
	if e.TotalAdded != 15 {
		t.Errorf("累计入库量应同步递增: expected=15, got=%d", e.TotalAdded)
	}

	if err := e.Restock(0); err == nil {
		t.Error("补货数量0应被拒绝")
	}
	if err := e.Restock(-5); err == nil {
		t.Error("负补货应被拒绝")
	}
}

// TestEntry_UpdatePrice 测试改价
func TestEntry_UpdatePrice(t *testing.T) {
	e := NewEntry("SKU-T4", "测试商品", "", 500, 10, "测试", "")

	if err := e.UpdatePrice(800); err != nil {
		t.Fatalf("改价失败: %v", err)
	}
	if e.Price != 800 {
		t.Errorf("价格错误: expected=800, got=%d", e.Price)
	}

	if err := e.UpdatePrice(0); err == nil {
		t.Error("价格0应被拒绝")
	}
	if err := e.UpdatePrice(-100); err == nil {
		t.Error("负价格应被拒绝")
	}
	if e.Price != 800 {
		t.Errorf("失败的改价不应改变价格: got=%d", e.Price)
	}
}

// TestEntry_CanSell 测试可售判断
func TestEntry_CanSell(t *testing.T) {
	e := NewEntry("SKU-T5", "测试商品", "", 500, 10, "测试", "")

	if !e.CanSell(10) {
		t.Error("余量恰好时应可售")
	}
	if e.CanSell(11) {
		t.Error("超量不可售")
	}
	if e.CanSell(0) {
		t.Error("数量0不可售")
	}

	e.SetListed(false)
	if e.CanSell(1) {
		t.Error("未上架不可售")
	}
}
