package catalog

import (
	"context"
)

// Repository 商品仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. Lock*方法必须在事务内调用(SELECT FOR UPDATE),
//    事务DB通过context传递
type Repository interface {
	// Create 创建商品条目
	Create(ctx context.Context, entry *Entry) error

	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, id uint) (*Entry, error)

	// FindByCode 根据商品编码查找
	FindByCode(ctx context.Context, productCode string) (*Entry, error)

	// LockByID 悲观锁查询商品(用于购买时锁定库存行)
	// 使用SELECT FOR UPDATE锁定行,防止并发超卖
	LockByID(ctx context.Context, id uint) (*Entry, error)

	// LockByCode 悲观锁按编码查询(用于补货合并)
	LockByCode(ctx context.Context, productCode string) (*Entry, error)

	// Update 回写商品(数量、价格、上架状态等)
	Update(ctx context.Context, entry *Entry) error

	// ListListed 分页查询在售商品(买家浏览)
	ListListed(ctx context.Context, params ListParams) ([]*Entry, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(名称、编码)
	Category string // 分类过滤
}
