package inventory

import (
	"time"
)

// Entry 卖家库存条目(聚合根)
// DDD设计说明:
// 1. 按(SellerID, ProductID)联合唯一,一个卖家对一个商品只有一条记录
// 2. 记录从平台购入、尚未挂牌转售的数量
// 3. 名称/描述/图片是购入时从商品条目拷贝的冗余展示字段,
//    商品后续改名不影响已购入的库存展示
// 4. 数量可以降为0但记录永不删除(保留购入价等历史信息)
type Entry struct {
	ID          uint
	SellerID    uint   // 卖家用户ID
	ProductID   uint   // 商品条目ID
	Quantity    int    // 持有数量
	UnitCost    int64  // 购入单价(分),最近一次购入时覆写
	Name        string // 冗余:商品名称(购入时快照)
	Description string // 冗余:商品描述
	ImageURL    string // 冗余:商品图片
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEntry 创建库存条目(首次购入时)
func NewEntry(sellerID, productID uint, quantity int, unitCost int64, name, description, imageURL string) *Entry {
	now := time.Now()
	return &Entry{
		SellerID:    sellerID,
		ProductID:   productID,
		Quantity:    quantity,
		UnitCost:    unitCost,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanDraw 判断是否可划出指定数量(挂牌时)
func (e *Entry) CanDraw(quantity int) bool {
	return quantity > 0 && e.Quantity >= quantity
}

// Draw 划出数量到挂牌
// 业务规则:划出后数量不能为负数
func (e *Entry) Draw(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if e.Quantity < quantity {
		return ErrInsufficientInventory
	}
	e.Quantity -= quantity
	e.UpdatedAt = time.Now()
	return nil
}

// Add 增加数量(购入或挂牌退回)
// 购入时同时覆写UnitCost为最新购入价
func (e *Entry) Add(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	e.Quantity += quantity
	e.UpdatedAt = time.Now()
	return nil
}

// RecordAcquisition 记录一次购入(数量增加+购入价覆写)
func (e *Entry) RecordAcquisition(quantity int, unitCost int64) error {
	if err := e.Add(quantity); err != nil {
		return err
	}
	e.UnitCost = unitCost
	return nil
}
