package stock

import (
	"context"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/inventory"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/ledger"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/listing"
)

// QueryUseCase 库存视图只读查询
// 订阅推送之外的主动查询入口(HTTP轮询、页面首屏)
type QueryUseCase struct {
	inventoryRepo inventory.Repository
	listingRepo   listing.Repository
	ledgerRepo    ledger.Repository
}

// NewQueryUseCase 创建查询用例
func NewQueryUseCase(
	inventoryRepo inventory.Repository,
	listingRepo listing.Repository,
	ledgerRepo ledger.Repository,
) *QueryUseCase {
	return &QueryUseCase{
		inventoryRepo: inventoryRepo,
		listingRepo:   listingRepo,
		ledgerRepo:    ledgerRepo,
	}
}

// ListInventory 查询某卖家的全部库存
func (uc *QueryUseCase) ListInventory(ctx context.Context, sellerID uint) ([]*inventory.Entry, error) {
	return uc.inventoryRepo.ListBySeller(ctx, sellerID)
}

// ListListings 查询某卖家的全部挂牌
func (uc *QueryUseCase) ListListings(ctx context.Context, sellerID uint) ([]*listing.Listing, error) {
	return uc.listingRepo.ListBySeller(ctx, sellerID)
}

// ListTrades 查询某买家的成交流水(分页)
func (uc *QueryUseCase) ListTrades(ctx context.Context, buyerID uint, page, pageSize int) ([]*ledger.Entry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return uc.ledgerRepo.ListByBuyer(ctx, buyerID, page, pageSize)
}
