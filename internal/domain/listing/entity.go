package listing

import (
	"time"
)

// Listing 卖家挂牌(聚合根)
// DDD设计说明:
// 1. 主键是生成的ID,但(SellerID, ProductID)逻辑唯一,
//    重复挂牌同一商品时合并数量(价格以最新一次为准)
// 2. 挂牌数量来自卖家库存划出,只有删除挂牌才会退回库存
// 3. 价格独立于购入价,由卖家自由定价
type Listing struct {
	ID          uint
	SellerID    uint   // 卖家用户ID
	ProductID   uint   // 商品条目ID
	Quantity    int    // 在售数量
	Price       int64  // 挂牌单价(分)
	Name        string // 冗余:商品名称(来自库存条目)
	Description string // 冗余:商品描述
	ImageURL    string // 冗余:商品图片
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewListing 创建挂牌(工厂方法)
// 展示字段从库存条目拷贝,保证挂牌展示与卖家购入时一致
func NewListing(sellerID, productID uint, quantity int, price int64, name, description, imageURL string) *Listing {
	now := time.Now()
	return &Listing{
		SellerID:    sellerID,
		ProductID:   productID,
		Quantity:    quantity,
		Price:       price,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy 检查挂牌是否属于指定卖家
// 权限校验必须在事务内基于锁定后的记录执行,
// 避免与并发删除产生check-then-act竞态
func (l *Listing) IsOwnedBy(sellerID uint) bool {
	return l.SellerID == sellerID
}

// Merge 合并追加挂牌
// 业务规则:数量累加,价格覆写为最新一次挂牌价(last-write-wins)
func (l *Listing) Merge(quantity int, price int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	l.Quantity += quantity
	l.Price = price
	l.UpdatedAt = time.Now()
	return nil
}

// SetQuantity 直接设定在售数量
// 注意:调小数量时差额不退回库存(只有删除挂牌退回),
// 库存划拨由应用层在调大数量时处理
func (l *Listing) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	l.Quantity = quantity
	l.UpdatedAt = time.Now()
	return nil
}

// SetPrice 更新挂牌价
func (l *Listing) SetPrice(price int64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	l.Price = price
	l.UpdatedAt = time.Now()
	return nil
}

// SetDescription 更新描述
func (l *Listing) SetDescription(description string) {
	l.Description = description
	l.UpdatedAt = time.Now()
}
