package inventory

import (
	"context"
)

// Repository 卖家库存仓储接口
// 设计说明:
// 1. 交易引擎的写路径一律走Lock*+Update/Create,在事务内执行
// 2. Find*是读路径(实时推送层、卖家页面查询),不加锁
type Repository interface {
	// Create 创建库存条目(首次购入)
	Create(ctx context.Context, entry *Entry) error

	// LockBySellerAndProduct 悲观锁查询(seller, product)条目
	// 不存在时返回ErrEntryNotFound,调用方据此走创建分支
	LockBySellerAndProduct(ctx context.Context, sellerID, productID uint) (*Entry, error)

	// Update 回写库存条目
	Update(ctx context.Context, entry *Entry) error

	// FindBySellerAndProduct 查询单个条目(不加锁)
	FindBySellerAndProduct(ctx context.Context, sellerID, productID uint) (*Entry, error)

	// ListBySeller 查询某卖家的全部库存(实时推送、卖家页面)
	ListBySeller(ctx context.Context, sellerID uint) ([]*Entry, error)

	// ListByProduct 查询某商品在所有卖家手中的库存(守恒审计)
	ListByProduct(ctx context.Context, productID uint) ([]*Entry, error)
}
