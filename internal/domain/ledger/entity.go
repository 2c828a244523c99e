package ledger

import (
	"time"
)

// Entry 成交流水(只增不改)
// 设计说明:
// 1. 每笔完成的购买追加一条,永不修改、永不删除(审计与对账依据)
// 2. TradeNo是业务主键,全局唯一、时间有序
// 3. UnitPrice/TotalPrice记录成交时价格快照,商品后续改价不影响历史流水
type Entry struct {
	ID          uint
	TradeNo     string // 交易号(业务主键,全局唯一)
	BuyerID     uint   // 买家用户ID
	ProductID   uint   // 商品条目ID
	ProductCode string // 商品编码(冗余,便于按编码对账)
	Quantity    int    // 成交数量
	UnitPrice   int64  // 成交单价(分)
	TotalPrice  int64  // 成交总价(分)
	CreatedAt   time.Time
}

// NewEntry 创建流水记录(工厂方法)
func NewEntry(buyerID, productID uint, productCode string, quantity int, unitPrice int64) *Entry {
	return &Entry{
		TradeNo:     GenerateTradeNo(),
		BuyerID:     buyerID,
		ProductID:   productID,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice * int64(quantity),
		CreatedAt:   time.Now(),
	}
}
