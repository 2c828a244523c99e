package listing

import (
	"context"
)

// Repository 挂牌仓储接口
type Repository interface {
	// Create 创建挂牌
	Create(ctx context.Context, l *Listing) error

	// LockByID 悲观锁按ID查询(更新/删除挂牌的入口)
	// 不存在时返回ErrListingNotFound——删除的幂等失败路径依赖此语义
	LockByID(ctx context.Context, id uint) (*Listing, error)

	// LockBySellerAndProduct 悲观锁按(seller, product)查询(挂牌合并)
	LockBySellerAndProduct(ctx context.Context, sellerID, productID uint) (*Listing, error)

	// Update 回写挂牌
	Update(ctx context.Context, l *Listing) error

	// Delete 删除挂牌(物理删除,数量已退回库存后调用)
	Delete(ctx context.Context, id uint) error

	// ListBySeller 查询某卖家的全部挂牌
	ListBySeller(ctx context.Context, sellerID uint) ([]*Listing, error)

	// ListByProduct 查询某商品的全部挂牌(守恒审计)
	ListByProduct(ctx context.Context, productID uint) ([]*Listing, error)
}
