package stock

import (
	"context"
	"errors"
	"time"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/inventory"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/listing"
	"github.com/asfundyarkhan/ticktok-sub001/internal/projection"
)

// DeleteListingUseCase 删除挂牌用例
// 把挂牌剩余数量退回卖家库存,然后物理删除挂牌行
type DeleteListingUseCase struct {
	inventoryRepo inventory.Repository
	listingRepo   listing.Repository
	txRunner      TxRunner
	notifier      *projection.Notifier
}

// NewDeleteListingUseCase 创建删除挂牌用例
func NewDeleteListingUseCase(
	inventoryRepo inventory.Repository,
	listingRepo listing.Repository,
	txRunner TxRunner,
	notifier *projection.Notifier,
) *DeleteListingUseCase {
	return &DeleteListingUseCase{
		inventoryRepo: inventoryRepo,
		listingRepo:   listingRepo,
		txRunner:      txRunner,
		notifier:      notifier,
	}
}

// DeleteListingRequest 删除挂牌请求
type DeleteListingRequest struct {
	ListingID uint // 挂牌ID
	SellerID  uint // 调用方卖家ID(权限校验)
}

// Execute 执行删除挂牌
//
// 业务规则:
// 1. 幂等:挂牌不存在返回"挂牌不存在"的业务失败,不报错、
//    绝不凭空补库存——重复删除不会创造库存
// 2. 剩余数量全额退回库存;库存记录意外缺失时新建一条兜底,
//    保证数量不凭空蒸发
func (uc *DeleteListingUseCase) Execute(ctx context.Context, req DeleteListingRequest) (result *Result, err error) {
	start := time.Now()
	defer func() { observeOp("delete_listing", outcomeOf(result, err), start) }()

	var sellerID uint
	var returned int
	err = uc.txRunner.Transaction(ctx, func(txCtx context.Context) error {
		result = nil

		// 1. 锁定挂牌
		l, lockErr := uc.listingRepo.LockByID(txCtx, req.ListingID)
		if lockErr != nil {
			if errors.Is(lockErr, listing.ErrListingNotFound) {
				result = rejected("挂牌不存在")
				return nil
			}
			return lockErr
		}

		// 2. 权限校验(锁定后)
		if !l.IsOwnedBy(req.SellerID) {
			result = rejected("无权操作该挂牌")
			return nil
		}
		sellerID = l.SellerID
		returned = l.Quantity

		// 3. 剩余数量退回库存
		if l.Quantity > 0 {
			inv, invErr := uc.inventoryRepo.LockBySellerAndProduct(txCtx, l.SellerID, l.ProductID)
			switch {
			case invErr == nil:
				if wErr := inv.Add(l.Quantity); wErr != nil {
					return wErr
				}
				if wErr := uc.inventoryRepo.Update(txCtx, inv); wErr != nil {
					return wErr
				}
			case errors.Is(invErr, inventory.ErrEntryNotFound):
				// 库存记录缺失属于异常数据,新建兜底避免数量蒸发
				inv = inventory.NewEntry(
					l.SellerID, l.ProductID, l.Quantity, l.Price,
					l.Name, l.Description, l.ImageURL,
				)
				if wErr := uc.inventoryRepo.Create(txCtx, inv); wErr != nil {
					return wErr
				}
			default:
				return invErr
			}
		}

		// 4. 物理删除挂牌行
		if wErr := uc.listingRepo.Delete(txCtx, l.ID); wErr != nil {
			return wErr
		}

		result = &Result{
			Success:  true,
			Message:  "挂牌已删除",
			Quantity: returned,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success {
		uc.notifier.NotifyListingsChanged(ctx, sellerID)
		if returned > 0 {
			uc.notifier.NotifyInventoryChanged(ctx, sellerID)
		}
	}

	return result, nil
}
