package stock

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/account"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/catalog"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/inventory"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/ledger"
	"github.com/asfundyarkhan/ticktok-sub001/internal/projection"
)

// BuyStockUseCase 购入平台库存用例
// 这是整个引擎最核心的用例:商品扣减、余额扣款、库存入账、
// 流水落账必须在同一事务内完成
type BuyStockUseCase struct {
	catalogRepo   catalog.Repository
	inventoryRepo inventory.Repository
	ledgerRepo    ledger.Repository
	accountRepo   account.Repository
	txRunner      TxRunner
	notifier      *projection.Notifier
	cache         CacheInvalidator
}

// NewBuyStockUseCase 创建购入用例
func NewBuyStockUseCase(
	catalogRepo catalog.Repository,
	inventoryRepo inventory.Repository,
	ledgerRepo ledger.Repository,
	accountRepo account.Repository,
	txRunner TxRunner,
	notifier *projection.Notifier,
	cache CacheInvalidator,
) *BuyStockUseCase {
	return &BuyStockUseCase{
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
		ledgerRepo:    ledgerRepo,
		accountRepo:   accountRepo,
		txRunner:      txRunner,
		notifier:      notifier,
		cache:         cache,
	}
}

// BuyStockRequest 购入请求
type BuyStockRequest struct {
	BuyerID   uint // 买家用户ID(从请求身份提取)
	ProductID uint // 商品条目ID
	Quantity  int  // 购买数量
}

// Execute 执行购入
//
// 防超卖流程:
// 1. SELECT FOR UPDATE 锁定商品行
// 2. 锁定后校验上架状态和余量
// 3. 锁定买家账户,校验余额
// 4. 商品-q、余额-总价、买家库存+q、流水+1条
// 5. COMMIT释放锁
//
// 任何校验失败在第一次写入之前发生,以Result数据返回,不产生写入
func (uc *BuyStockUseCase) Execute(ctx context.Context, req BuyStockRequest) (result *Result, err error) {
	start := time.Now()
	defer func() { observeOp("buy_stock", outcomeOf(result, err), start) }()

	if req.Quantity <= 0 {
		return rejected("购买数量必须大于0"), nil
	}

	err = uc.txRunner.Transaction(ctx, func(txCtx context.Context) error {
		// 重试时fn会重新执行,结果必须每次重置
		result = nil

		// 1. 锁定商品行
		entry, lockErr := uc.catalogRepo.LockByID(txCtx, req.ProductID)
		if lockErr != nil {
			if errors.Is(lockErr, catalog.ErrEntryNotFound) {
				result = rejected("商品不存在")
				return nil
			}
			return lockErr
		}

		// 2. 校验必须基于锁定后的数据
		if !entry.Listed {
			result = rejected("商品未上架")
			return nil
		}
		if entry.Quantity < req.Quantity {
			result = rejected("平台库存不足")
			return nil
		}

		// 3. 锁定买家账户,校验余额
		acct, lockErr := uc.accountRepo.LockByUserID(txCtx, req.BuyerID)
		if lockErr != nil {
			if errors.Is(lockErr, account.ErrAccountNotFound) {
				result = rejected("账户不存在")
				return nil
			}
			return lockErr
		}

		totalCost := entry.Price * int64(req.Quantity)
		if !acct.CanAfford(totalCost) {
			result = rejected("账户余额不足")
			return nil
		}

		// 4. 校验全部通过,开始写入
		if wErr := entry.Deduct(req.Quantity); wErr != nil {
			return wErr
		}
		if wErr := uc.catalogRepo.Update(txCtx, entry); wErr != nil {
			return wErr
		}

		if wErr := acct.Debit(totalCost); wErr != nil {
			return wErr
		}
		if wErr := uc.accountRepo.Update(txCtx, acct); wErr != nil {
			return wErr
		}

		// 买家库存:已有记录则累加并覆写购入价,否则新建
		inv, lockErr := uc.inventoryRepo.LockBySellerAndProduct(txCtx, req.BuyerID, req.ProductID)
		switch {
		case lockErr == nil:
			if wErr := inv.RecordAcquisition(req.Quantity, entry.Price); wErr != nil {
				return wErr
			}
			if wErr := uc.inventoryRepo.Update(txCtx, inv); wErr != nil {
				return wErr
			}
		case errors.Is(lockErr, inventory.ErrEntryNotFound):
			inv = inventory.NewEntry(
				req.BuyerID, req.ProductID, req.Quantity, entry.Price,
				entry.Name, entry.Description, entry.CoverURL,
			)
			if wErr := uc.inventoryRepo.Create(txCtx, inv); wErr != nil {
				return wErr
			}
		default:
			return lockErr
		}

		// 成交流水(只增不改)
		trade := ledger.NewEntry(req.BuyerID, entry.ID, entry.ProductCode, req.Quantity, entry.Price)
		if wErr := uc.ledgerRepo.Append(txCtx, trade); wErr != nil {
			return wErr
		}

		result = &Result{
			Success:   true,
			Message:   "购买成功",
			Quantity:  req.Quantity,
			TotalCost: totalCost,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. 提交成功后的副作用
	if result.Success {
		uc.notifier.NotifyCatalogChanged(ctx)
		uc.notifier.NotifyInventoryChanged(ctx, req.BuyerID)
		uc.invalidateCache(ctx)
	}

	return result, nil
}

func (uc *BuyStockUseCase) invalidateCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if cErr := uc.cache.Invalidate(ctx); cErr != nil {
		log.Printf("商品缓存失效失败: %v", cErr)
	}
}
