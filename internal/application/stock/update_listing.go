package stock

import (
	"context"
	"errors"
	"time"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/inventory"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/listing"
	"github.com/asfundyarkhan/ticktok-sub001/internal/projection"
)

// UpdateListingUseCase 更新挂牌用例
type UpdateListingUseCase struct {
	inventoryRepo inventory.Repository
	listingRepo   listing.Repository
	txRunner      TxRunner
	notifier      *projection.Notifier
}

// NewUpdateListingUseCase 创建更新挂牌用例
func NewUpdateListingUseCase(
	inventoryRepo inventory.Repository,
	listingRepo listing.Repository,
	txRunner TxRunner,
	notifier *projection.Notifier,
) *UpdateListingUseCase {
	return &UpdateListingUseCase{
		inventoryRepo: inventoryRepo,
		listingRepo:   listingRepo,
		txRunner:      txRunner,
		notifier:      notifier,
	}
}

// UpdateListingRequest 更新挂牌请求
// 指针字段为nil表示不修改该项
type UpdateListingRequest struct {
	ListingID   uint    // 挂牌ID
	SellerID    uint    // 调用方卖家ID(权限校验)
	Quantity    *int    // 新在售数量
	Price       *int64  // 新挂牌单价(分)
	Description *string // 新描述
}

// Execute 执行更新挂牌
//
// 业务规则:
// 1. 权限校验必须在事务内基于锁定后的记录(挂牌归属不可信任请求方声明)
// 2. 调大数量:差额从卖家库存划出,库存不足则整体失败
// 3. 调小数量:直接设定,差额不退回库存——退回只发生在删除挂牌时,
//    这是既定行为,有测试钉住
func (uc *UpdateListingUseCase) Execute(ctx context.Context, req UpdateListingRequest) (result *Result, err error) {
	start := time.Now()
	defer func() { observeOp("update_listing", outcomeOf(result, err), start) }()

	if req.Quantity == nil && req.Price == nil && req.Description == nil {
		return rejected("没有需要更新的内容"), nil
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return rejected("挂牌数量不能为负数"), nil
	}
	if req.Price != nil && *req.Price <= 0 {
		return rejected("挂牌价格必须大于0"), nil
	}

	var sellerID uint
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

		// 3. 数量调整
		moved := 0
		if req.Quantity != nil && *req.Quantity != l.Quantity {
			if *req.Quantity > l.Quantity {
				// 调大:差额从库存划出
				delta := *req.Quantity - l.Quantity

				inv, invErr := uc.inventoryRepo.LockBySellerAndProduct(txCtx, l.SellerID, l.ProductID)
				if invErr != nil {
					if errors.Is(invErr, inventory.ErrEntryNotFound) {
						result = rejected("没有该商品的库存")
						return nil
					}
					return invErr
				}
				if inv.Quantity < delta {
					result = rejected("卖家库存不足")
					return nil
				}

				if wErr := inv.Draw(delta); wErr != nil {
					return wErr
				}
				if wErr := uc.inventoryRepo.Update(txCtx, inv); wErr != nil {
					return wErr
				}
				moved = delta
			}
			// 调小不退库存,直接设定
			if wErr := l.SetQuantity(*req.Quantity); wErr != nil {
				return wErr
			}
		}

		// 4. 价格/描述
		if req.Price != nil {
			if wErr := l.SetPrice(*req.Price); wErr != nil {
				return wErr
			}
		}
		if req.Description != nil {
			l.SetDescription(*req.Description)
		}

		if wErr := uc.listingRepo.Update(txCtx, l); wErr != nil {
			return wErr
		}

		result = &Result{
			Success:  true,
			Message:  "挂牌已更新",
			Quantity: moved,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success {
		uc.notifier.NotifyListingsChanged(ctx, sellerID)
		if result.Quantity > 0 {
			uc.notifier.NotifyInventoryChanged(ctx, sellerID)
		}
	}

	return result, nil
}
