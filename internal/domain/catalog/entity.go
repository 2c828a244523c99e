package catalog

import (
	"time"
)

// PlatformSellerID 平台自营的卖家ID
// 平台补货创建的商品归属于平台（seller_id=0）
const PlatformSellerID uint = 0

// Entry 平台商品条目（聚合根）
// DDD设计说明:
// 1. Entry是平台可售库存池的根实体,按ProductCode全局唯一
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. Quantity是当前在售数量,TotalAdded是历史累计入库数量
//    守恒校验:平台余量 + Σ卖家库存 + Σ挂牌数量 == TotalAdded
// 4. Quantity只能由"购买"扣减、"补货"增加,任何其他路径不得直接改写
type Entry struct {
	ID          uint
	ProductCode string // 商品编码(业务唯一标识)
	Name        string // 商品名称
	Description string // 商品描述
	Price       int64  // 单价(单位:分,1元=100分)
	Quantity    int    // 当前在售数量
	TotalAdded  int    // 历史累计入库数量(仅补货递增,用于守恒审计)
	Listed      bool   // 是否上架(未上架不可购买)
	Category    string // 商品分类
	SellerID    uint   // 归属卖家(0=平台)
	CoverURL    string // 商品图片URL
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEntry 创建新商品条目(工厂方法)
// 由管理员补货首次调用时创建,初始数量即首次入库数量
func NewEntry(productCode, name, description string, price int64, quantity int, category, coverURL string) *Entry {
	now := time.Now()
	return &Entry{
		ProductCode: productCode,
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		TotalAdded:  quantity,
		Listed:      true,
		Category:    category,
		SellerID:    PlatformSellerID,
		CoverURL:    coverURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanSell 判断是否可售出指定数量
// 业务规则:必须已上架且余量充足
func (e *Entry) CanSell(quantity int) bool {
	return e.Listed && quantity > 0 && e.Quantity >= quantity
}

// Deduct 扣减在售数量(仅购买路径调用)
// 业务规则:扣减后数量不能为负数
func (e *Entry) Deduct(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !e.Listed {
		return ErrNotListed
	}
	if e.Quantity < quantity {
		return ErrInsufficientStock
	}
	e.Quantity -= quantity
	e.UpdatedAt = time.Now()
	return nil
}

// Restock 补货(仅管理员路径调用)
// TotalAdded同步递增,保证守恒审计口径一致
func (e *Entry) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	e.Quantity += quantity
	e.TotalAdded += quantity
	e.UpdatedAt = time.Now()
	return nil
}

// UpdatePrice 更新价格(领域行为)
// 业务规则:价格必须>0
func (e *Entry) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	e.Price = newPrice
	e.UpdatedAt = time.Now()
	return nil
}

// SetListed 上架/下架
func (e *Entry) SetListed(listed bool) {
	e.Listed = listed
	e.UpdatedAt = time.Now()
}
