// Package catalog 实现平台商品的管理与浏览用例:
// 管理员补货(Restock)与买家浏览(BrowseCatalog)
package catalog

import (
	"context"
	"errors"
	"log"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/catalog"
	"github.com/asfundyarkhan/ticktok-sub001/internal/projection"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// TxRunner 事务执行器接口(与交易引擎共用同一实现)
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator 商品列表缓存失效接口
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// RestockUseCase 管理员补货用例
// 首次补货创建商品条目,再次补货按编码合并:
// 数量与历史累计入库(total_added)同步递增
type RestockUseCase struct {
	catalogRepo catalog.Repository
	txRunner    TxRunner
	notifier    *projection.Notifier
	cache       CacheInvalidator
}

// NewRestockUseCase 创建补货用例
func NewRestockUseCase(
	catalogRepo catalog.Repository,
	txRunner TxRunner,
	notifier *projection.Notifier,
	cache CacheInvalidator,
) *RestockUseCase {
	return &RestockUseCase{
		catalogRepo: catalogRepo,
		txRunner:    txRunner,
		notifier:    notifier,
		cache:       cache,
	}
}

// RestockRequest 补货请求
type RestockRequest struct {
	ProductCode string // 商品编码(业务唯一标识)
	Name        string // 商品名称(首次创建时必填)
	Description string // 商品描述
	Price       int64  // 单价(分);>0时覆写现有价格
	Quantity    int    // 补货数量
	Category    string // 商品分类
	CoverURL    string // 商品图片URL
}

// RestockResponse 补货响应
type RestockResponse struct {
	EntryID    uint  `json:"entry_id"`
	Quantity   int   `json:"quantity"`    // 补货后在售数量
	TotalAdded int   `json:"total_added"` // 历史累计入库数量
	Price      int64 `json:"price"`
}

// Execute 执行补货
func (uc *RestockUseCase) Execute(ctx context.Context, req RestockRequest) (*RestockResponse, error) {
	if req.ProductCode == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "商品编码不能为空")
	}
	if req.Quantity <= 0 {
		return nil, catalog.ErrInvalidQuantity
	}

	var entry *catalog.Entry
	err := uc.txRunner.Transaction(ctx, func(txCtx context.Context) error {
		existing, lockErr := uc.catalogRepo.LockByCode(txCtx, req.ProductCode)
		switch {
		case lockErr == nil:
			// 已有条目:数量合并,价格按需覆写
			if wErr := existing.Restock(req.Quantity); wErr != nil {
				return wErr
			}
			if req.Price > 0 {
				if wErr := existing.UpdatePrice(req.Price); wErr != nil {
					return wErr
				}
			}
			if wErr := uc.catalogRepo.Update(txCtx, existing); wErr != nil {
				return wErr
			}
			entry = existing
			return nil

		case errors.Is(lockErr, catalog.ErrEntryNotFound):
			// 首次补货:创建条目
			if req.Price <= 0 {
				return catalog.ErrInvalidPrice
			}
			if req.Name == "" {
				return apperrors.New(apperrors.ErrCodeInvalidParams, "商品名称不能为空")
			}
			created := catalog.NewEntry(
				req.ProductCode, req.Name, req.Description,
				req.Price, req.Quantity, req.Category, req.CoverURL,
			)
			if wErr := uc.catalogRepo.Create(txCtx, created); wErr != nil {
				return wErr
			}
			entry = created
			return nil

		default:
			return lockErr
		}
	})
	if err != nil {
		return nil, err
	}

	// 提交成功后的副作用
	uc.notifier.NotifyCatalogChanged(ctx)
	if uc.cache != nil {
		if cErr := uc.cache.Invalidate(ctx); cErr != nil {
			log.Printf("商品缓存失效失败: %v", cErr)
		}
	}

	return &RestockResponse{
		EntryID:    entry.ID,
		Quantity:   entry.Quantity,
		TotalAdded: entry.TotalAdded,
		Price:      entry.Price,
	}, nil
}
