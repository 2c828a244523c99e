package ledger

import (
	"context"
)

// Repository 流水仓储接口
// 只增不改:接口上只有Append和查询,不提供Update/Delete
type Repository interface {
	// Append 追加一条流水(事务内调用)
	Append(ctx context.Context, entry *Entry) error

	// ListByBuyer 查询某买家的流水(分页)
	ListByBuyer(ctx context.Context, buyerID uint, page, pageSize int) ([]*Entry, int64, error)

	// ListByProduct 查询某商品的全部流水(对账)
	ListByProduct(ctx context.Context, productID uint) ([]*Entry, error)
}
