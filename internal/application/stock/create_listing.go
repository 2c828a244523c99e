package stock

import (
	"context"
	"errors"
	"time"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/inventory"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/listing"
	"github.com/asfundyarkhan/ticktok-sub001/internal/projection"
)

// CreateListingUseCase 创建挂牌用例
// 把卖家库存中的数量划到挂牌上架:库存-q、挂牌+q同事务完成
type CreateListingUseCase struct {
	inventoryRepo inventory.Repository
	listingRepo   listing.Repository
	txRunner      TxRunner
	notifier      *projection.Notifier
}

// NewCreateListingUseCase 创建挂牌用例
func NewCreateListingUseCase(
	inventoryRepo inventory.Repository,
	listingRepo listing.Repository,
	txRunner TxRunner,
	notifier *projection.Notifier,
) *CreateListingUseCase {
	return &CreateListingUseCase{
		inventoryRepo: inventoryRepo,
		listingRepo:   listingRepo,
		txRunner:      txRunner,
		notifier:      notifier,
	}
}

// CreateListingRequest 创建挂牌请求
type CreateListingRequest struct {
	SellerID  uint  // 卖家用户ID
	ProductID uint  // 商品条目ID
	Quantity  int   // 挂牌数量
	Price     int64 // 挂牌单价(分)
}

// Execute 执行创建挂牌
//
// 业务规则:
// 1. 同一(卖家,商品)已有挂牌时合并:数量累加,价格覆写为本次价格
// 2. 库存划出与挂牌写入同事务,失败全部回滚
func (uc *CreateListingUseCase) Execute(ctx context.Context, req CreateListingRequest) (result *Result, err error) {
	start := time.Now()
	defer func() { observeOp("create_listing", outcomeOf(result, err), start) }()

	if req.Quantity <= 0 {
		return rejected("挂牌数量必须大于0"), nil
	}
	if req.Price <= 0 {
		return rejected("挂牌价格必须大于0"), nil
	}

	err = uc.txRunner.Transaction(ctx, func(txCtx context.Context) error {
		result = nil

		// 1. 锁定卖家库存
		inv, lockErr := uc.inventoryRepo.LockBySellerAndProduct(txCtx, req.SellerID, req.ProductID)
		if lockErr != nil {
			if errors.Is(lockErr, inventory.ErrEntryNotFound) {
				result = rejected("没有该商品的库存")
				return nil
			}
			return lockErr
		}

		if inv.Quantity < req.Quantity {
			result = rejected("卖家库存不足")
			return nil
		}

		// 2. 库存划出
		if wErr := inv.Draw(req.Quantity); wErr != nil {
			return wErr
		}
		if wErr := uc.inventoryRepo.Update(txCtx, inv); wErr != nil {
			return wErr
		}

		// 3. 已有挂牌则合并,否则新建
		l, lockErr := uc.listingRepo.LockBySellerAndProduct(txCtx, req.SellerID, req.ProductID)
		switch {
		case lockErr == nil:
			if wErr := l.Merge(req.Quantity, req.Price); wErr != nil {
				return wErr
			}
			if wErr := uc.listingRepo.Update(txCtx, l); wErr != nil {
				return wErr
			}
		case errors.Is(lockErr, listing.ErrListingNotFound):
			l = listing.NewListing(
				req.SellerID, req.ProductID, req.Quantity, req.Price,
				inv.Name, inv.Description, inv.ImageURL,
			)
			if wErr := uc.listingRepo.Create(txCtx, l); wErr != nil {
				return wErr
			}
		default:
			return lockErr
		}

		result = &Result{
			Success:  true,
			Message:  "挂牌成功",
			Quantity: req.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success {
		uc.notifier.NotifyInventoryChanged(ctx, req.SellerID)
		uc.notifier.NotifyListingsChanged(ctx, req.SellerID)
	}

	return result, nil
}
